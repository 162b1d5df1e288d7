package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pii-labeler/models"
)

// TagValidator checks tag and document requests before they reach storage.
type TagValidator struct {
}

func NewTagValidator() Validator {
	return &TagValidator{}
}

func (v *TagValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AddTagRequest:
		return v.validateAddTagRequest(ctx, value, fields...)
	case *models.AddTagRequest:
		return v.validateAddTagRequest(ctx, *value, fields...)

	case models.UpdateTagRequest:
		return v.validateTagID(value.TagID, fields...)
	case *models.UpdateTagRequest:
		return v.validateTagID(value.TagID, fields...)

	case models.DeleteTagRequest:
		return v.validateTagID(value.TagID, fields...)
	case *models.DeleteTagRequest:
		return v.validateTagID(value.TagID, fields...)

	case models.DocumentRequest:
		return v.validateDocumentRequest(value, fields...)
	case *models.DocumentRequest:
		return v.validateDocumentRequest(*value, fields...)

	case models.DocumentIDsRequest:
		return v.validateDocumentIDsRequest(value, fields...)
	case *models.DocumentIDsRequest:
		return v.validateDocumentIDsRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TagValidator) validateAddTagRequest(_ context.Context, request models.AddTagRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDocumentID, FieldCategory, FieldSpanText, FieldStartOffset, FieldEndOffset, FieldOffsets}
	}

	for _, f := range fields {
		switch f {
		case FieldDocumentID:
			if request.DocumentID == 0 {
				return missing(f)
			}
			if request.DocumentID < 0 {
				return ErrInvalidDocumentID
			}
		case FieldCategory:
			if strings.TrimSpace(request.Category) == "" {
				return missing(f)
			}
		case FieldSpanText:
			if request.SpanText == "" {
				return missing(f)
			}
		case FieldStartOffset:
			if request.StartOffset == nil {
				return missing(f)
			}
		case FieldEndOffset:
			if request.EndOffset == nil {
				return missing(f)
			}
		case FieldOffsets:
			if request.StartOffset == nil || request.EndOffset == nil {
				return missing(FieldStartOffset)
			}
			start, end := *request.StartOffset, *request.EndOffset
			if start < 0 || end < 0 {
				return ErrNegativeOffset
			}
			if start >= end {
				return ErrInvalidOffsetOrder
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TagValidator) validateTagID(tagID int64, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTagID}
	}

	for _, f := range fields {
		switch f {
		case FieldTagID:
			if tagID == 0 {
				return missing(f)
			}
			if tagID < 0 {
				return ErrInvalidTagID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TagValidator) validateDocumentRequest(request models.DocumentRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDocumentID}
	}

	for _, f := range fields {
		switch f {
		case FieldDocumentID:
			if request.DocumentID == 0 {
				return missing(f)
			}
			if request.DocumentID < 0 {
				return ErrInvalidDocumentID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TagValidator) validateDocumentIDsRequest(request models.DocumentIDsRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDocumentIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldDocumentIDs:
			if len(request.DocumentIDs) == 0 {
				return ErrEmptyIDs
			}
			for i, id := range request.DocumentIDs {
				if id <= 0 {
					return fmt.Errorf("validation error at index %d: %w", i, ErrInvalidDocumentID)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
