package compile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ProcessCandidate reads one candidate. Content is validated as UTF-8 while
// it streams and is otherwise returned byte for byte.
func ProcessCandidate(doc Document) Outcome {
	info, err := os.Stat(doc.Path)
	if err != nil {
		return Outcome{Kind: OutcomeOtherFailure, Err: err}
	}
	if info.IsDir() {
		return Outcome{Kind: OutcomeOtherFailure, Err: fmt.Errorf("%s is a directory", doc.Path)}
	}
	if info.Size() == 0 {
		return Outcome{Kind: OutcomeEmpty}
	}

	f, err := os.Open(doc.Path)
	if err != nil {
		return Outcome{Kind: OutcomeOtherFailure, Err: err}
	}
	defer f.Close()

	content, err := io.ReadAll(transform.NewReader(f, encoding.UTF8Validator))
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return Outcome{Kind: OutcomeDecodeFailure, Err: fmt.Errorf("%w: %s: %w", ErrDecode, doc.Path, err)}
		}
		return Outcome{Kind: OutcomeOtherFailure, Err: err}
	}
	return Outcome{Kind: OutcomeOK, Content: string(content)}
}
