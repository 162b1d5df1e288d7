package models

import (
	"encoding/json"
	"time"
)

// Document is an uploaded text together with its corpus metadata.
type Document struct {
	ID int64 `json:"id"`

	// DataID is the corpus identifier from the import file. It is unique
	// per owner (or globally, depending on configuration) at import time.
	DataID string `json:"data_id"`

	// NumberOfSubjects is stored as text exactly as it was imported.
	NumberOfSubjects string `json:"number_of_subjects"`

	// Provenance is opaque structured metadata passed through unmodified.
	Provenance json.RawMessage `json:"provenance"`

	Text    string `json:"text"`
	OwnerID int64  `json:"owner_id"`

	// TagCount is filled by list queries only.
	TagCount int `json:"tag_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Document model.
func (d Document) TableName() string {
	return "documents"
}

// DocumentFilter narrows document queries.
type DocumentFilter struct {
	// OwnerID restricts the result to one owner when non-zero.
	OwnerID int64
	// IDs restricts the result to the given document ids when non-nil.
	// A non-nil empty slice matches nothing.
	IDs []int64
	// Limit caps the number of rows when non-zero.
	Limit uint64
	// NewestFirst orders by id descending instead of ascending.
	NewestFirst bool
}

// DocumentDetail is everything the annotation view needs for one document.
type DocumentDetail struct {
	Document   Document   `json:"document"`
	Tags       []Tag      `json:"tags"`
	Categories []Category `json:"categories"`
	PrevID     *int64     `json:"prev_id"`
	NextID     *int64     `json:"next_id"`
}

// ImportResult summarises one JSONL upload.
type ImportResult struct {
	Documents       int `json:"documents"`
	Tags            int `json:"tags"`
	SkippedEntities int `json:"skipped_entities"`
}
