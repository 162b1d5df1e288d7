package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// maxLineSize bounds a single record.
const maxLineSize = 32 << 20

var emptyObject = json.RawMessage("{}")

// Decode reads every record from r. Blank lines are skipped.
//
// The first malformed line stops decoding and is reported as a [*LineError]
// wrapping [ErrMalformedLine]; no records are returned in that case.
func Decode(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	records := make([]Record, 0, 16)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, &LineError{Line: lineNo, Err: err}
		}
		if len(bytes.TrimSpace(rec.Metadata.Provenance)) == 0 || bytes.Equal(rec.Metadata.Provenance, []byte("null")) {
			rec.Metadata.Provenance = emptyObject
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, &LineError{Line: lineNo + 1, Err: err}
	}

	return records, nil
}

// Encode writes records to w, one compact JSON object per line, separated
// by '\n' without a trailing newline. HTML characters are not escaped.
func Encode(w io.Writer, records ...Record) error {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	for i, rec := range records {
		if !json.Valid(rec.Metadata.Provenance) {
			rec.Metadata.Provenance = emptyObject
		}
		if rec.Entities == nil {
			rec.Entities = []Entity{}
		}

		buf.Reset()
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("error encoding record %d: %w", i, err)
		}

		line := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
		if i > 0 {
			if _, err := w.Write([]byte("\n")); err != nil {
				return err
			}
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}

	return nil
}
