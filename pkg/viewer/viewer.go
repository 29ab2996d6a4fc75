// Package viewer opens a file with the host platform's default handler.
package viewer

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Opener opens a file for the user.
type Opener interface {
	Open(path string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) error

// Open calls f(path).
func (f OpenerFunc) Open(path string) error {
	return f(path)
}

// CommandOpener launches an external command with the file path as its
// last argument and waits for it to exit.
type CommandOpener struct {
	Name string
	Args []string
}

// Default returns the opener for the current platform.
func Default() CommandOpener {
	return CommandOpener{Name: defaultCommand, Args: append([]string(nil), defaultArgs...)}
}

// Open runs the command. A non-zero exit is an error that carries the
// command's combined output.
func (o CommandOpener) Open(path string) error {
	args := append(append([]string(nil), o.Args...), path)
	cmd := exec.Command(o.Name, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", o.Name, err, msg)
		}
		return fmt.Errorf("%s: %w", o.Name, err)
	}
	return nil
}
