// Package jsonl reads and writes the line-delimited JSON corpus format:
// one document per line with its metadata, text and tagged entities.
package jsonl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one line of a corpus file.
type Record struct {
	Metadata Metadata `json:"metadata"`
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
}

// Metadata describes a record's origin.
type Metadata struct {
	DataID           string          `json:"data_id"`
	NumberOfSubjects Subjects        `json:"number_of_subjects"`
	Provenance       json.RawMessage `json:"provenance"`
}

// Entity is a tagged span inside a record's text. Field order is the order
// written on export.
type Entity struct {
	SpanText       string `json:"span_text"`
	EntityType     string `json:"entity_type"`
	StartOffset    int    `json:"start_offset"`
	EndOffset      int    `json:"end_offset"`
	SpanID         string `json:"span_id"`
	EntityID       string `json:"entity_id"`
	Annotator      string `json:"annotator"`
	IdentifierType string `json:"identifier_type"`
}

// Subjects holds number_of_subjects as text. It decodes from either a JSON
// number or a JSON string and encodes back as a JSON integer.
type Subjects string

// UnmarshalJSON accepts 3, 3.0, "3" and null.
func (s *Subjects) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}

	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Subjects(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("number_of_subjects must be a number or a string: %w", err)
	}
	*s = Subjects(n.String())

	return nil
}

// MarshalJSON writes the stored value as an integer. Values that do not
// parse as a number are written as 0.
func (s Subjects) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(s.Int())), nil
}

// Int parses the stored text. Fractions are truncated; anything that is
// not a plain non-negative number yields 0.
func (s Subjects) Int() int {
	str := strings.TrimSpace(string(s))
	if str == "" {
		return 0
	}

	if n, err := strconv.Atoi(str); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if strings.ContainsAny(str, "eE+-") {
		return 0
	}
	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return int(f)
	}

	return 0
}
