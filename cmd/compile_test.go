package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promptcompile/pkg/viewer"

	"github.com/spf13/cobra"
)

// newTestCommand returns a fresh command so flag state does not leak
// between tests.
func newTestCommand(args ...string) (*cobra.Command, *bytes.Buffer) {
	c := &cobra.Command{Use: "promptcompile", RunE: runCompile}
	bindCompileFlags(c)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	return c, &out
}

func stubOpener(t *testing.T, o viewer.Opener) {
	t.Helper()
	old := newOpener
	newOpener = func() viewer.Opener { return o }
	t.Cleanup(func() { newOpener = old })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCompile_WritesOutputAndOpens(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "X")
	writeFile(t, filepath.Join(dir, "README.md"), "ignored")

	var opened string
	stubOpener(t, viewer.OpenerFunc(func(p string) error { opened = p; return nil }))

	c, out := newTestCommand("--dir", dir, "--color", "never")
	if err := c.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	outPath := filepath.Join(dir, "LLM System Prompts.md")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if want := "# LLM System Prompts\n\n# a System Prompt\n\nX"; string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
	if opened != outPath {
		t.Errorf("opened %q, want %q", opened, outPath)
	}
	console := out.String()
	for _, want := range []string{"Found 1 file.", "Creating " + outPath, "Added: ", "File opened successfully."} {
		if !strings.Contains(console, want) {
			t.Errorf("console missing %q:\n%s", want, console)
		}
	}
}

func TestRunCompile_FlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".promptcompile.yaml"), "title: Team Prompts\nheading_suffix: Prompt\noutput_name: all.md\n")
	writeFile(t, filepath.Join(dir, ".promptignore"), "draft-*.md\n")
	writeFile(t, filepath.Join(dir, "a.md"), "A")
	writeFile(t, filepath.Join(dir, "draft-x.md"), "D")
	writeFile(t, filepath.Join(dir, "skip.md"), "S")

	stubOpener(t, viewer.OpenerFunc(func(string) error {
		t.Error("viewer should not run with --no-open")
		return nil
	}))

	c, _ := newTestCommand("--dir", dir, "--output", "merged.md", "--exclude", "skip.md", "--no-open", "--color", "never")
	if err := c.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "merged.md"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "# Team Prompts\n\n# a Prompt\n\nA"; string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "all.md")); !errors.Is(err, os.ErrNotExist) {
		t.Error("--output should override output_name from the config file")
	}
}

func TestRunCompile_NoFiles(t *testing.T) {
	dir := t.TempDir()
	c, out := newTestCommand("--dir", dir, "--no-open", "--color", "never")
	if err := c.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "No .md files found in "+dir) {
		t.Errorf("console = %q", out.String())
	}
}

func TestRunCompile_ErrorsAreReportedNotReturned(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid color", args: []string{"--color", "rainbow"}},
		{name: "missing directory", args: []string{"--dir", filepath.Join(os.TempDir(), "promptcompile-missing-dir")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--no-open"}, tt.args...)
			if !containsFlag(args, "--dir") {
				args = append(args, "--dir", t.TempDir())
			}
			c, out := newTestCommand(args...)
			if err := c.Execute(); err != nil {
				t.Fatalf("Execute should succeed, got %v", err)
			}
			if !strings.Contains(out.String(), "An unexpected error occurred") {
				t.Errorf("console = %q", out.String())
			}
		})
	}
}

func TestRunCompile_OpenFailureShowsPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "A")
	stubOpener(t, viewer.OpenerFunc(func(string) error { return errors.New("no handler") }))

	c, out := newTestCommand("--dir", dir, "--color", "never")
	if err := c.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	console := out.String()
	if !strings.Contains(console, "Could not open file: no handler") {
		t.Errorf("console = %q", console)
	}
	if !strings.Contains(console, "File is located at: "+filepath.Join(dir, "LLM System Prompts.md")) {
		t.Errorf("console = %q", console)
	}
}

func TestVersionCommand_Short(t *testing.T) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"version", "--short"})
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "dev" {
		t.Errorf("version = %q, want dev", got)
	}
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
