package compile

import (
	"bufio"
	"io"
)

// Separator is written between two entries of the output document.
const Separator = "\n\n---\n\n"

// documentWriter lays out the output document: a title, then entries
// separated by [Separator].
type documentWriter struct {
	w             *bufio.Writer
	headingSuffix string
	entries       int
}

func newDocumentWriter(w io.Writer, headingSuffix string) *documentWriter {
	return &documentWriter{w: bufio.NewWriter(w), headingSuffix: headingSuffix}
}

func (d *documentWriter) writeTitle(title string) error {
	_, err := d.w.WriteString("# " + title + "\n\n")
	return err
}

// writeEntry writes the heading and raw content of one candidate, preceded
// by a separator unless it is the first entry.
func (d *documentWriter) writeEntry(name, content string) error {
	if d.entries > 0 {
		if _, err := d.w.WriteString(Separator); err != nil {
			return err
		}
	}
	if _, err := d.w.WriteString(Heading(name, d.headingSuffix) + "\n\n"); err != nil {
		return err
	}
	if _, err := d.w.WriteString(content); err != nil {
		return err
	}
	d.entries++
	return nil
}

func (d *documentWriter) flush() error {
	return d.w.Flush()
}

// Heading returns the heading line for a document name, without a newline.
func Heading(name, suffix string) string {
	if suffix == "" {
		return "# " + name
	}
	return "# " + name + " " + suffix
}
