package jsonl

import (
	"errors"
	"fmt"
)

// ErrMalformedLine is wrapped by every [LineError].
var ErrMalformedLine = errors.New("malformed JSONL line")

// LineError reports the 1-based line that could not be decoded.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s %d: %v", ErrMalformedLine, e.Line, e.Err)
}

// Unwrap lets errors.Is match both ErrMalformedLine and the decoder error.
func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}
