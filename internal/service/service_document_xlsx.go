package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MKhiriev/go-pii-labeler/models"
)

const (
	documentsSheet = "Documents"
	entitiesSheet  = "Entities"
)

var (
	documentsHeader = []any{"data_id", "number_of_subjects", "text", "tag_count"}
	entitiesHeader  = []any{"data_id", "span_text", "entity_type", "start_offset", "end_offset", "span_id", "entity_id", "annotator", "identifier_type"}
)

// ExportXLSX writes the same selection as Export to a workbook with a
// Documents sheet and an Entities sheet.
func (s *documentService) ExportXLSX(ctx context.Context, actor models.Actor, ids []int64) ([]byte, error) {
	docs, tags, err := s.selectForExport(ctx, actor, ids)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName("Sheet1", documentsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err = f.NewSheet(entitiesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err = writeSheetRow(f, documentsSheet, 1, documentsHeader); err != nil {
		return nil, err
	}
	if err = writeSheetRow(f, entitiesSheet, 1, entitiesHeader); err != nil {
		return nil, err
	}
	for _, sheet := range []string{documentsSheet, entitiesSheet} {
		if err = f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	entityRow := 2
	for i, doc := range docs {
		docTags := tags[doc.ID]

		if err = writeSheetRow(f, documentsSheet, i+2, []any{
			doc.DataID, doc.NumberOfSubjects, doc.Text, len(docTags),
		}); err != nil {
			return nil, err
		}

		for _, tag := range docTags {
			if err = writeSheetRow(f, entitiesSheet, entityRow, []any{
				doc.DataID, tag.SpanText, tag.CategoryValue, tag.StartOffset, tag.EndOffset,
				tag.SpanID, tag.EntityID, tag.Annotator, tag.IdentifierType,
			}); err != nil {
				return nil, err
			}
			entityRow++
		}
	}

	var buf bytes.Buffer
	if _, err = f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err = f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
