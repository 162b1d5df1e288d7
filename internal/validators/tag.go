package validators

// Field name constants used to specify which fields should be validated.
// The add-tag fields are checked in the order listed, so the first missing
// one is the one reported.
const (
	FieldDocumentID  = "document_id"
	FieldCategory    = "pii_category"
	FieldSpanText    = "span_text"
	FieldStartOffset = "start_offset"
	FieldEndOffset   = "end_offset"

	// FieldOffsets targets the sign and order of both offsets.
	FieldOffsets = "offsets"

	FieldTagID       = "tag_id"
	FieldDocumentIDs = "document_ids"
)
