package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// recorder is a Reporter that keeps every event as a line.
type recorder struct {
	lines []string
}

func (r *recorder) add(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recorder) NoFiles(dir, ext string)               { r.add("nofiles %s", ext) }
func (r *recorder) Found(n int, mode Mode, out string)    { r.add("found %d %s", n, mode) }
func (r *recorder) SkippedEmpty(path string)              { r.add("empty %s", filepath.Base(path)) }
func (r *recorder) Added(path string)                     { r.add("added %s", filepath.Base(path)) }
func (r *recorder) ProcessError(path string, err error)   { r.add("error %s", filepath.Base(path)) }
func (r *recorder) DecodeError(path string, err error)    { r.add("decode %s", filepath.Base(path)) }
func (r *recorder) Complete(mode Mode, out string, n int) { r.add("complete %s %d", mode.Past(), n) }
func (r *recorder) Opening()                              { r.add("opening") }
func (r *recorder) Opened()                               { r.add("opened") }
func (r *recorder) OpenFailed(err error, abs string)      { r.add("openfailed %s", abs) }

func (r *recorder) has(line string) bool {
	for _, l := range r.lines {
		if l == line {
			return true
		}
	}
	return false
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
