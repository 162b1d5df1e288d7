// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package spans implements the bookkeeping rules for PII spans: whitespace
// trimming with offset re-derivation, per-document identifier assignment,
// position uniqueness and entity-group re-parenting.
//
// Offsets are counted in Unicode code points, so a span over "José" has
// length 4 regardless of its UTF-8 encoding. Every function is pure.
package spans

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a trimmed character range [Start, End) and the text it covers.
type Span struct {
	Text  string
	Start int
	End   int
}

// Trim strips leading and trailing whitespace from text and shifts the
// offsets by the number of runes removed on each side.
//
// If the shifted end does not lie after the shifted start, End is derived
// from Start and the trimmed length instead. Returns [ErrEmptySpan] when
// nothing but whitespace remains.
func Trim(text string, start, end int) (Span, error) {
	trimmed := strings.TrimFunc(text, unicode.IsSpace)
	if trimmed == "" {
		return Span{}, ErrEmptySpan
	}

	total := utf8.RuneCountInString(text)
	left := total - utf8.RuneCountInString(strings.TrimLeftFunc(text, unicode.IsSpace))
	right := total - utf8.RuneCountInString(strings.TrimRightFunc(text, unicode.IsSpace))

	span := Span{Text: trimmed, Start: start + left, End: end - right}
	if span.End <= span.Start {
		span.End = span.Start + utf8.RuneCountInString(trimmed)
	}

	return span, nil
}

// Len returns the length of text in runes.
func Len(text string) int {
	return utf8.RuneCountInString(text)
}

// Slice returns the runes of text in [start, end).
//
// Returns [ErrOffsetsOutOfRange] unless 0 <= start < end <= Len(text).
func Slice(text string, start, end int) (string, error) {
	if start < 0 || start >= end {
		return "", ErrOffsetsOutOfRange
	}

	runes := []rune(text)
	if end > len(runes) {
		return "", ErrOffsetsOutOfRange
	}

	return string(runes[start:end]), nil
}

// ValidateAgainst checks that span lies inside docText and that the text at
// its offsets equals span.Text.
func ValidateAgainst(docText string, span Span) error {
	got, err := Slice(docText, span.Start, span.End)
	if err != nil {
		return err
	}
	if got != span.Text {
		return ErrSpanMismatch
	}

	return nil
}
