package compile

import (
	"errors"
	"time"
)

// ErrDecode marks a candidate whose content is not valid UTF-8. It aborts
// the whole write pass.
var ErrDecode = errors.New("decoding error")

// Document is a candidate text document found in the working directory.
type Document struct {
	Path string // Full path to the file.
	Name string // Base name without the extension.
	Size int64  // Size in bytes at discovery time.
}

// Mode says whether a run creates the output document or replaces it.
type Mode int

const (
	ModeCreating Mode = iota
	ModeUpdating
)

// String returns "Creating" or "Updating".
func (m Mode) String() string {
	if m == ModeUpdating {
		return "Updating"
	}
	return "Creating"
}

// Past returns "created" or "updated".
func (m Mode) Past() string {
	if m == ModeUpdating {
		return "updated"
	}
	return "created"
}

// OutcomeKind classifies the result of reading one candidate.
type OutcomeKind int

const (
	OutcomeOK            OutcomeKind = iota // Content was read.
	OutcomeEmpty                            // Zero-byte file; skipped.
	OutcomeDecodeFailure                    // Invalid UTF-8; aborts the pass.
	OutcomeOtherFailure                     // I/O, permission or vanished file; skipped.
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeDecodeFailure:
		return "decode failure"
	case OutcomeOtherFailure:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the typed result of [ProcessCandidate].
type Outcome struct {
	Kind    OutcomeKind
	Content string // Set only for OutcomeOK.
	Err     error  // Set for the failure kinds.
}

// Skip records a candidate that contributed nothing to the output.
type Skip struct {
	Path   string
	Reason OutcomeKind
	Err    error // Nil for empty files.
}

// Result is the run report of one compile.
type Result struct {
	Directory  string
	OutputPath string
	Mode       Mode
	Candidates int      // Number of discovered candidates.
	Added      []string // Paths written to the output, in order.
	Skipped    []Skip
	NoFiles    bool   // Discovery found nothing; the output was not touched.
	Aborted    bool   // A decode failure stopped the write pass.
	AbortPath  string // Candidate that caused the abort.
	Opened     bool   // The viewer launched successfully.
	Elapsed    time.Duration
}
