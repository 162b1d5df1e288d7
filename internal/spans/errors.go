package spans

import "errors"

var (
	// ErrEmptySpan is returned when a span consists only of whitespace.
	ErrEmptySpan = errors.New("span text is empty after trimming")

	// ErrOffsetsOutOfRange is returned when offsets do not describe a
	// non-empty range inside the document text.
	ErrOffsetsOutOfRange = errors.New("offsets are out of document range")

	// ErrSpanMismatch is returned when the document text at the given
	// offsets differs from the span text.
	ErrSpanMismatch = errors.New("span text does not match document text at offsets")
)
