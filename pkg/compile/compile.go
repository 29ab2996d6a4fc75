// Package compile merges the text documents of one directory into a single
// output document.
package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"promptcompile/pkg/viewer"

	"go.uber.org/zap"
)

// Options configures a Compiler.
type Options struct {
	Directory     string   // Working directory to scan.
	Extension     string   // Recognized document extension, with the dot.
	OutputName    string   // Output document name inside Directory.
	ExcludedNames []string // Reserved names that are never candidates.
	Title         string   // Title line text.
	HeadingSuffix string   // Appended to each document name in its heading.
	Open          bool     // Launch the viewer after writing.
	Matcher       PathMatcher
}

// Reporter receives human-readable progress events.
type Reporter interface {
	NoFiles(dir, ext string)
	Found(count int, mode Mode, outputPath string)
	SkippedEmpty(path string)
	Added(path string)
	ProcessError(path string, err error)
	DecodeError(path string, err error)
	Complete(mode Mode, outputPath string, skipped int)
	Opening()
	Opened()
	OpenFailed(err error, absPath string)
}

// Compiler runs the compile operation.
type Compiler struct {
	opts     Options
	reporter Reporter
	opener   viewer.Opener
	logger   *zap.Logger
}

// New returns a Compiler. A nil logger is replaced by a no-op logger.
func New(opts Options, reporter Reporter, opener viewer.Opener, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{opts: opts, reporter: reporter, opener: opener, logger: logger}
}

// OutputPath returns the full path of the output document.
func (c *Compiler) OutputPath() string {
	return filepath.Join(c.opts.Directory, c.opts.OutputName)
}

// Compile discovers candidates, writes the output document and opens it.
// Per-candidate failures are reported and recorded in the Result. A decode
// failure stops the pass and is reported through Result.Aborted. The
// returned error is non-nil only when the run could not proceed at all or
// ctx was cancelled; the Result is never nil.
func (c *Compiler) Compile(ctx context.Context) (*Result, error) {
	start := time.Now()
	outputPath := c.OutputPath()
	res := &Result{Directory: c.opts.Directory, OutputPath: outputPath}
	defer func() { res.Elapsed = time.Since(start) }()

	c.logger.Debug("Starting compile", zap.String("directory", c.opts.Directory), zap.String("output", outputPath))

	excluded := []string{outputPath}
	for _, name := range c.opts.ExcludedNames {
		excluded = append(excluded, filepath.Join(c.opts.Directory, name))
	}

	docs, err := Discover(c.opts.Directory, c.opts.Extension, excluded, c.opts.Matcher)
	if err != nil {
		c.logger.Error("Failed to discover documents", zap.Error(err))
		return res, fmt.Errorf("failed to discover documents: %w", err)
	}
	res.Candidates = len(docs)
	if len(docs) == 0 {
		res.NoFiles = true
		c.reporter.NoFiles(c.opts.Directory, c.opts.Extension)
		return res, nil
	}

	if _, err := os.Stat(outputPath); err == nil {
		res.Mode = ModeUpdating
	}
	c.reporter.Found(len(docs), res.Mode, outputPath)

	if err := c.writePass(ctx, docs, res); err != nil {
		return res, err
	}
	if res.Aborted {
		return res, nil
	}

	c.reporter.Complete(res.Mode, outputPath, len(res.Skipped))
	c.logger.Info("Compilation complete",
		zap.String("output", outputPath),
		zap.Int("added", len(res.Added)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Duration("elapsed", time.Since(start)))

	if c.opts.Open && c.opener != nil {
		c.open(res)
	}
	return res, nil
}

// writePass truncates the output and writes every candidate that reads
// cleanly. The file is flushed and closed on every return path, including
// a decode abort.
func (c *Compiler) writePass(ctx context.Context, docs []Document, res *Result) (err error) {
	outFile, err := os.Create(res.OutputPath)
	if err != nil {
		c.logger.Error("Failed to create output file", zap.String("file", res.OutputPath), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := newDocumentWriter(outFile, c.opts.HeadingSuffix)
	defer func() {
		flushErr := w.flush()
		closeErr := outFile.Close()
		if err == nil {
			err = errors.Join(flushErr, closeErr)
		}
	}()

	if err := w.writeTitle(c.opts.Title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("Compile cancelled", zap.String("nextFile", doc.Path))
			return err
		}

		outcome := ProcessCandidate(doc)
		switch outcome.Kind {
		case OutcomeEmpty:
			c.reporter.SkippedEmpty(doc.Path)
			c.logger.Warn("Skipping empty file", zap.String("file", doc.Path))
			res.Skipped = append(res.Skipped, Skip{Path: doc.Path, Reason: outcome.Kind})

		case OutcomeDecodeFailure:
			c.reporter.DecodeError(doc.Path, outcome.Err)
			c.logger.Error("Decoding error, aborting", zap.String("file", doc.Path), zap.Error(outcome.Err))
			res.Aborted = true
			res.AbortPath = doc.Path
			return nil

		case OutcomeOtherFailure:
			c.reporter.ProcessError(doc.Path, outcome.Err)
			c.logger.Warn("Failed to process file", zap.String("file", doc.Path), zap.Error(outcome.Err))
			res.Skipped = append(res.Skipped, Skip{Path: doc.Path, Reason: outcome.Kind, Err: outcome.Err})

		case OutcomeOK:
			if err := w.writeEntry(doc.Name, outcome.Content); err != nil {
				return fmt.Errorf("failed to write %s to output: %w", doc.Path, err)
			}
			res.Added = append(res.Added, doc.Path)
			c.reporter.Added(doc.Path)
			c.logger.Debug("Added file", zap.String("file", doc.Path), zap.Int("bytes", len(outcome.Content)))
		}
	}
	return nil
}

func (c *Compiler) open(res *Result) {
	c.reporter.Opening()
	if err := c.opener.Open(res.OutputPath); err != nil {
		absPath, absErr := filepath.Abs(res.OutputPath)
		if absErr != nil {
			absPath = res.OutputPath
		}
		c.reporter.OpenFailed(err, absPath)
		c.logger.Warn("Could not open output", zap.String("file", absPath), zap.Error(err))
		return
	}
	res.Opened = true
	c.reporter.Opened()
}
