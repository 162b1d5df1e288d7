package models

import "time"

// Default values applied to tags created without explicit metadata.
const (
	DefaultAnnotator      = "Anonymous"
	DefaultIdentifierType = "quasi"
)

// Tag is a PII span inside a document.
//
// SpanID identifies the tag within its document. EntityID is the key of the
// coreference group the tag belongs to; the tag whose SpanID equals its
// EntityID is the group leader.
type Tag struct {
	ID         int64 `json:"id"`
	DocumentID int64 `json:"document_id"`
	CategoryID int64 `json:"category_id"`

	// CategoryValue and CategoryColor are resolved from the registry on read.
	CategoryValue string `json:"pii_category"`
	CategoryColor string `json:"background_color"`

	SpanText    string `json:"span_text"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`

	SpanID         string  `json:"span_id"`
	EntityID       string  `json:"entity_id"`
	Annotator      string  `json:"annotator"`
	IdentifierType string  `json:"identifier_type"`
	Confidence     float64 `json:"confidence"`

	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Tag model.
func (t Tag) TableName() string {
	return "pii_tags"
}

// IsLeader reports whether the tag represents its entity group.
func (t Tag) IsLeader() bool {
	return t.SpanID == t.EntityID
}

// AddTagRequest is the payload of the add-tag operation.
// Offsets are pointers so that a missing field can be told apart from zero.
type AddTagRequest struct {
	DocumentID     int64   `json:"document_id"`
	Category       string  `json:"pii_category"`
	SpanText       string  `json:"span_text"`
	StartOffset    *int    `json:"start_offset"`
	EndOffset      *int    `json:"end_offset"`
	SpanID         string  `json:"span_id"`
	EntityID       string  `json:"entity_id"`
	Annotator      string  `json:"annotator"`
	IdentifierType string  `json:"identifier_type"`
	Confidence     float64 `json:"confidence"`
}

// UpdateTagRequest is the payload of the update-tag operation.
// Nil fields are left unchanged.
type UpdateTagRequest struct {
	TagID          int64   `json:"tag_id"`
	Category       *string `json:"pii_category_value"`
	IdentifierType *string `json:"identifier_type"`
	EntityID       *string `json:"entity_id"`
}

// DeleteTagRequest is the payload of the delete-tag operation.
type DeleteTagRequest struct {
	TagID int64 `json:"tag_id"`
}

// DeleteTagResult carries the deleted tag id and every tag whose entity id
// was rewritten by re-parenting.
type DeleteTagResult struct {
	DeletedID  int64 `json:"deleted_id"`
	Reparented []Tag `json:"reparented"`
}
