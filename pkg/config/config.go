// Package config holds runtime configuration: defaults, the optional YAML
// config file, and validation. Command-line flags are applied on top by the
// cmd package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".promptcompile.yaml"

// ColorMode controls ANSI color output on the console.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [Default], overlaid
// by [LoadFile] and finally by command-line flags.
type Config struct {
	Directory string `yaml:"-"` // Set from --dir or [ResolveDirectory].

	// Document selection.
	Extension     string   `yaml:"extension"`      // Default: ".md".
	OutputName    string   `yaml:"output_name"`    // Default: "LLM System Prompts.md".
	ExcludedNames []string `yaml:"excluded_names"` // Default: ["README.md"].
	IgnoreFile    string   `yaml:"ignore_file"`    // Default: ".promptignore".
	Exclude       []string `yaml:"exclude"`        // Extra gitignore-style patterns.

	// Output formatting.
	Title         string `yaml:"title"`          // Default: "LLM System Prompts".
	HeadingSuffix string `yaml:"heading_suffix"` // Default: "System Prompt".

	// Behavior.
	Open  bool      `yaml:"open"`  // Default: true.
	Color ColorMode `yaml:"color"` // Default: "auto".
	Debug bool      `yaml:"debug"`
}

// Default returns a Config with every default applied.
func Default() Config {
	return Config{
		Extension:     ".md",
		OutputName:    "LLM System Prompts.md",
		ExcludedNames: []string{"README.md"},
		IgnoreFile:    ".promptignore",
		Title:         "LLM System Prompts",
		HeadingSuffix: "System Prompt",
		Open:          true,
		Color:         ColorAuto,
	}
}

// ResolveDirectory returns the directory holding the running executable,
// falling back to the current working directory when that cannot be
// determined.
func ResolveDirectory() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		if dir := filepath.Dir(exe); dir != "" {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values. A missing file is not an error; loaded
// reports whether a file was read.
func LoadFile(path string, cfg *Config) (loaded bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return true, nil
}

// Validate checks cross-field constraints. It normalizes Extension to carry
// a leading dot.
func (c *Config) Validate() error {
	var errs []error

	if c.Extension == "" {
		errs = append(errs, errors.New("extension must not be empty"))
	} else if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	switch {
	case c.OutputName == "":
		errs = append(errs, errors.New("output name must not be empty"))
	case strings.ContainsAny(c.OutputName, `/\`):
		errs = append(errs, fmt.Errorf("output name %q must not contain a path separator", c.OutputName))
	case c.Extension != "" && filepath.Ext(c.OutputName) != c.Extension:
		errs = append(errs, fmt.Errorf("output name %q must end in %s", c.OutputName, c.Extension))
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color))
	}

	return errors.Join(errs...)
}
