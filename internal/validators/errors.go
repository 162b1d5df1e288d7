package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrMissingField is wrapped together with the name of the first
	// missing required field.
	ErrMissingField       = errors.New("missing required field")
	ErrNegativeOffset     = errors.New("offsets must be non-negative")
	ErrInvalidOffsetOrder = errors.New("start_offset must be less than end_offset")
	ErrInvalidTagID       = errors.New("invalid tag ID")
	ErrInvalidDocumentID  = errors.New("invalid document ID")
	ErrEmptyIDs           = errors.New("IDs list cannot be empty")
)
