// Package report prints the human-readable progress of a compile run.
package report

import (
	"fmt"
	"io"

	"promptcompile/pkg/compile"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Console writes progress lines to a terminal or any other writer.
type Console struct {
	w       io.Writer
	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
}

var _ compile.Reporter = (*Console)(nil)

// New returns a Console writing to w. Colors are emitted only when color
// is set.
func New(w io.Writer, color bool) *Console {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Console{
		w:       w,
		info:    r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (c *Console) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(c.w, style.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) blank() {
	fmt.Fprintln(c.w)
}

func (c *Console) NoFiles(dir, ext string) {
	c.line(c.warn, "No %s files found in %s", ext, dir)
}

func (c *Console) Found(count int, mode compile.Mode, outputPath string) {
	c.blank()
	c.line(c.info, "Found %d %s.", count, plural(count, "file", "files"))
	c.line(c.info, "%s %s", mode, outputPath)
	c.blank()
}

func (c *Console) SkippedEmpty(path string) {
	c.line(c.warn, "Skipping empty file: %s", path)
}

func (c *Console) Added(path string) {
	c.line(c.success, "Added: %s", path)
}

func (c *Console) ProcessError(path string, err error) {
	c.line(c.warn, "Error processing %s: %v", path, err)
}

func (c *Console) DecodeError(path string, err error) {
	c.blank()
	c.line(c.fail, "Decoding error occurred: %v", err)
}

func (c *Console) Complete(mode compile.Mode, outputPath string, skipped int) {
	c.blank()
	c.line(c.success, "Compilation complete, file %s: %s", mode.Past(), outputPath)
	if skipped > 0 {
		c.line(c.warn, "Note: %d %s skipped.", skipped, plural(skipped, "file was", "files were"))
	}
}

func (c *Console) Opening() {
	c.line(c.muted, "Opening the compiled file...")
}

func (c *Console) Opened() {
	c.line(c.success, "File opened successfully.")
	c.blank()
}

func (c *Console) OpenFailed(err error, absPath string) {
	c.line(c.warn, "Could not open file: %v", err)
	c.line(c.info, "File is located at: %s", absPath)
	c.blank()
}

// Cancelled reports a run stopped by an interrupt.
func (c *Console) Cancelled() {
	c.blank()
	c.line(c.warn, "Operation cancelled by user.")
	c.blank()
}

// Unexpected reports an error that ended the run early.
func (c *Console) Unexpected(err error) {
	c.line(c.fail, "An unexpected error occurred: %v", err)
	c.blank()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
