package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHeader indicates the stream ended before the title and
	// bounding-box lines were read.
	ErrMissingHeader = errors.New("stream: missing header")

	// ErrMalformedLine indicates a recognized command whose arguments could
	// not be parsed.
	ErrMalformedLine = errors.New("stream: malformed line")
)

// LineError wraps a parse failure with its position in the stream.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
