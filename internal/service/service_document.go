// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-pii-labeler/internal/archive"
	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/jsonl"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/spans"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// DefaultDocumentListLimit is the page size used when a list request does
// not name one.
const DefaultDocumentListLimit = 10

// importedConfidence is stamped on every tag created by an upload.
const importedConfidence = 1.0

type documentService struct {
	documentRepository store.DocumentRepository
	tagRepository      store.TagRepository
	categoryRepository store.CategoryRepository
	transactor         store.Transactor
	archiver           archive.Archiver

	// dataIDScope is config.DataIDScopeOwner or config.DataIDScopeGlobal.
	dataIDScope string

	logger *logger.Logger
}

func NewDocumentService(storages *store.Storages, archiver archive.Archiver, cfg config.Import, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: storages.DocumentRepository,
		tagRepository:      storages.TagRepository,
		categoryRepository: storages.CategoryRepository,
		transactor:         storages.DB,
		archiver:           archiver,
		dataIDScope:        cfg.DataIDScope,
		logger:             logger,
	}
}

// Import decodes raw as JSONL and stores every record with its entities.
//
// A malformed line, a data_id repeated inside the file or a data_id that is
// already stored rejects the whole upload before anything is written.
// Entities that cannot become valid tags are skipped and counted. The raw
// upload is archived after the transaction commits; archive failures are
// only logged.
func (s *documentService) Import(ctx context.Context, actor models.Actor, raw []byte) (models.ImportResult, error) {
	log := logger.FromContext(ctx)

	records, err := jsonl.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Err(err).Str("func", "*documentService.Import").Msg("upload is not valid JSONL")
		return models.ImportResult{}, err
	}

	if dups := duplicateDataIDs(records); len(dups) > 0 {
		return models.ImportResult{}, fmt.Errorf("%w: %s", ErrDuplicateDataIDInFile, strings.Join(dups, ", "))
	}

	var result models.ImportResult
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		result = models.ImportResult{}

		if err := s.checkExistingDataIDs(ctx, actor, records); err != nil {
			return err
		}

		categories, err := s.categoryIndex(ctx)
		if err != nil {
			return err
		}

		for i, rec := range records {
			doc, err := s.documentRepository.Create(ctx, models.Document{
				DataID:           rec.Metadata.DataID,
				NumberOfSubjects: string(rec.Metadata.NumberOfSubjects),
				Provenance:       rec.Metadata.Provenance,
				Text:             rec.Text,
				OwnerID:          actor.UserID,
			})
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			result.Documents++

			inserted := make([]models.Tag, 0, len(rec.Entities))
			for j, entity := range rec.Entities {
				tag, reason := importedTag(doc, entity, categories, inserted, actor)
				if reason != "" {
					log.Debug().
						Str("data_id", doc.DataID).
						Int("entity", j).
						Str("reason", reason).
						Msg("entity skipped")
					result.SkippedEntities++
					continue
				}

				created, err := s.tagRepository.Create(ctx, tag)
				if err != nil {
					return fmt.Errorf("record %d entity %d: %w", i+1, j, err)
				}
				inserted = append(inserted, created)
				result.Tags++
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*documentService.Import").Int64("owner_id", actor.UserID).Msg("import rolled back")
		return models.ImportResult{}, err
	}

	if result.Documents > 0 {
		name, err := s.archiver.Store(ctx, actor.UserID, raw)
		if err != nil {
			log.Err(err).Str("func", "*documentService.Import").Msg("archiving upload failed")
		} else if name != "" {
			log.Info().Str("object", name).Msg("upload archived")
		}
	}

	log.Info().
		Int64("owner_id", actor.UserID).
		Int("documents", result.Documents).
		Int("tags", result.Tags).
		Int("skipped_entities", result.SkippedEntities).
		Msg("upload imported")

	return result, nil
}

func (s *documentService) checkExistingDataIDs(ctx context.Context, actor models.Actor, records []jsonl.Record) error {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Metadata.DataID != "" {
			ids = append(ids, rec.Metadata.DataID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	ownerID := actor.UserID
	if s.dataIDScope == config.DataIDScopeGlobal {
		ownerID = 0
	}

	existing, err := s.documentRepository.ExistingDataIDs(ctx, ownerID, ids)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: %s", ErrDataIDAlreadyExists, strings.Join(existing, ", "))
	}

	return nil
}

func (s *documentService) categoryIndex(ctx context.Context) (map[string]models.Category, error) {
	categories, err := s.categoryRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		index[c.Value] = c
	}

	return index, nil
}

// importedTag turns entity into a tag of doc. A non-empty reason means the
// entity must be skipped.
func importedTag(doc models.Document, entity jsonl.Entity, categories map[string]models.Category, inserted []models.Tag, actor models.Actor) (models.Tag, string) {
	category, ok := categories[entity.EntityType]
	if !ok {
		return models.Tag{}, "unknown category"
	}

	span, err := spans.Trim(entity.SpanText, entity.StartOffset, entity.EndOffset)
	if err != nil || span.End == 0 {
		return models.Tag{}, "empty span"
	}
	if err = spans.ValidateAgainst(doc.Text, span); err != nil {
		return models.Tag{}, err.Error()
	}
	if spans.HasPosition(inserted, span.Start, span.End) {
		return models.Tag{}, "duplicate position"
	}

	spanID, entityID := spans.AssignIDs(inserted, entity.SpanID, entity.EntityID)

	return models.Tag{
		DocumentID:     doc.ID,
		CategoryID:     category.ID,
		CategoryValue:  category.Value,
		CategoryColor:  category.BackgroundColor,
		SpanText:       span.Text,
		StartOffset:    span.Start,
		EndOffset:      span.End,
		SpanID:         spanID,
		EntityID:       entityID,
		Annotator:      orDefault(entity.Annotator, models.DefaultAnnotator),
		IdentifierType: orDefault(entity.IdentifierType, models.DefaultIdentifierType),
		Confidence:     importedConfidence,
		CreatedBy:      actor.UserID,
	}, ""
}

// Export renders the selected documents as JSONL in id order, tags in
// storage order.
func (s *documentService) Export(ctx context.Context, actor models.Actor, ids []int64) ([]byte, error) {
	docs, tags, err := s.selectForExport(ctx, actor, ids)
	if err != nil {
		return nil, err
	}

	records := make([]jsonl.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, exportRecord(doc, tags[doc.ID]))
	}

	buf := new(bytes.Buffer)
	if err = jsonl.Encode(buf, records...); err != nil {
		return nil, fmt.Errorf("encoding export failed: %w", err)
	}

	return buf.Bytes(), nil
}

// selectForExport loads the documents among ids visible to actor together
// with their tags. Unknown and foreign ids are dropped silently.
func (s *documentService) selectForExport(ctx context.Context, actor models.Actor, ids []int64) ([]models.Document, map[int64][]models.Tag, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil, nil, ErrNoDocumentsFound
	}

	docs, err := s.documentRepository.List(ctx, visibleTo(actor, models.DocumentFilter{IDs: ids}))
	if err != nil {
		log.Err(err).Str("func", "*documentService.selectForExport").Msg("listing documents failed")
		return nil, nil, fmt.Errorf("listing documents failed: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil, ErrNoDocumentsFound
	}

	docIDs := make([]int64, 0, len(docs))
	for _, doc := range docs {
		docIDs = append(docIDs, doc.ID)
	}

	tags, err := s.tagRepository.ListByDocuments(ctx, docIDs)
	if err != nil {
		log.Err(err).Str("func", "*documentService.selectForExport").Msg("listing tags failed")
		return nil, nil, fmt.Errorf("listing tags failed: %w", err)
	}

	return docs, tags, nil
}

func exportRecord(doc models.Document, tags []models.Tag) jsonl.Record {
	entities := make([]jsonl.Entity, 0, len(tags))
	for _, tag := range tags {
		entities = append(entities, jsonl.Entity{
			SpanText:       tag.SpanText,
			EntityType:     tag.CategoryValue,
			StartOffset:    tag.StartOffset,
			EndOffset:      tag.EndOffset,
			SpanID:         tag.SpanID,
			EntityID:       tag.EntityID,
			Annotator:      tag.Annotator,
			IdentifierType: tag.IdentifierType,
		})
	}

	return jsonl.Record{
		Metadata: jsonl.Metadata{
			DataID:           doc.DataID,
			NumberOfSubjects: jsonl.Subjects(doc.NumberOfSubjects),
			Provenance:       doc.Provenance,
		},
		Text:     doc.Text,
		Entities: entities,
	}
}

// List returns the newest documents visible to actor. A negative limit
// means DefaultDocumentListLimit and zero means no limit.
func (s *documentService) List(ctx context.Context, actor models.Actor, limit int) ([]models.Document, error) {
	if limit < 0 {
		limit = DefaultDocumentListLimit
	}

	docs, err := s.documentRepository.List(ctx, visibleTo(actor, models.DocumentFilter{
		Limit:       uint64(limit),
		NewestFirst: true,
	}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*documentService.List").Msg("listing documents failed")
		return nil, fmt.Errorf("listing documents failed: %w", err)
	}

	return docs, nil
}

func (s *documentService) Detail(ctx context.Context, actor models.Actor, id int64) (models.DocumentDetail, error) {
	log := logger.FromContext(ctx).With().Str("func", "*documentService.Detail").Int64("document_id", id).Logger()

	doc, err := s.visibleDocument(ctx, actor, id)
	if err != nil {
		return models.DocumentDetail{}, err
	}

	tags, err := s.tagRepository.ListByDocument(ctx, id)
	if err != nil {
		log.Err(err).Msg("listing tags failed")
		return models.DocumentDetail{}, fmt.Errorf("listing tags failed: %w", err)
	}

	categories, err := s.categoryRepository.List(ctx)
	if err != nil {
		log.Err(err).Msg("listing categories failed")
		return models.DocumentDetail{}, fmt.Errorf("listing categories failed: %w", err)
	}

	prev, next, err := s.documentRepository.Adjacent(ctx, id, visibleTo(actor, models.DocumentFilter{}).OwnerID)
	if err != nil {
		log.Err(err).Msg("looking up adjacent documents failed")
		return models.DocumentDetail{}, fmt.Errorf("looking up adjacent documents failed: %w", err)
	}

	return models.DocumentDetail{
		Document:   doc,
		Tags:       tags,
		Categories: categories,
		PrevID:     prev,
		NextID:     next,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	if _, err := s.visibleDocument(ctx, actor, id); err != nil {
		return err
	}

	if err := s.documentRepository.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*documentService.Delete").Int64("document_id", id).Msg("deleting document failed")
		return fmt.Errorf("deleting document failed: %w", err)
	}

	return nil
}

func (s *documentService) BulkDelete(ctx context.Context, actor models.Actor, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	deleted := 0
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		deleted = 0

		docs, err := s.documentRepository.List(ctx, visibleTo(actor, models.DocumentFilter{IDs: slices.Compact(slices.Sorted(slices.Values(ids)))}))
		if err != nil {
			return err
		}

		for _, doc := range docs {
			if err = s.documentRepository.Delete(ctx, doc.ID); err != nil {
				return err
			}
			deleted++
		}

		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*documentService.BulkDelete").Msg("bulk delete rolled back")
		return 0, fmt.Errorf("bulk delete failed: %w", err)
	}

	return deleted, nil
}

// visibleDocument loads id and checks actor may see it.
func (s *documentService) visibleDocument(ctx context.Context, actor models.Actor, id int64) (models.Document, error) {
	doc, err := s.documentRepository.Get(ctx, id)
	if err != nil {
		return models.Document{}, fmt.Errorf("loading document %d: %w", id, err)
	}
	if !actor.CanModify(doc.OwnerID) {
		return models.Document{}, ErrPermissionDenied
	}

	return doc, nil
}

// visibleTo restricts filter to the actor's own documents unless the actor
// is an admin.
func visibleTo(actor models.Actor, filter models.DocumentFilter) models.DocumentFilter {
	if !actor.IsAdmin {
		filter.OwnerID = actor.UserID
	}
	return filter
}

func duplicateDataIDs(records []jsonl.Record) []string {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, rec := range records {
		id := rec.Metadata.DataID
		if id == "" {
			continue
		}
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}

	return dups
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
