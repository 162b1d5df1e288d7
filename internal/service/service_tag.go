package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/spans"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/models"
)

type tagService struct {
	tagRepository      store.TagRepository
	documentRepository store.DocumentRepository
	categoryRepository store.CategoryRepository
	transactor         store.Transactor

	logger *logger.Logger
}

// NewTagService returns the bare service. Wrap it with
// NewTagValidationService to reject malformed requests early.
func NewTagService(storages *store.Storages, logger *logger.Logger) TagService {
	return &tagService{
		tagRepository:      storages.TagRepository,
		documentRepository: storages.DocumentRepository,
		categoryRepository: storages.CategoryRepository,
		transactor:         storages.DB,
		logger:             logger,
	}
}

// Add creates a tag after trimming the span and re-deriving its offsets.
// Omitted span and entity ids are assigned from the document's existing tags.
func (s *tagService) Add(ctx context.Context, actor models.Actor, req models.AddTagRequest) (models.Tag, error) {
	log := logger.FromContext(ctx)

	doc, err := s.documentRepository.Get(ctx, req.DocumentID)
	if err != nil {
		return models.Tag{}, fmt.Errorf("loading document %d: %w", req.DocumentID, err)
	}
	if !actor.CanModify(doc.OwnerID) {
		return models.Tag{}, ErrPermissionDenied
	}

	category, err := s.categoryRepository.FindByValue(ctx, strings.TrimSpace(req.Category))
	if err != nil {
		return models.Tag{}, fmt.Errorf("resolving category %q: %w", req.Category, err)
	}

	span, err := spans.Trim(req.SpanText, *req.StartOffset, *req.EndOffset)
	if err != nil {
		return models.Tag{}, err
	}
	if err = spans.ValidateAgainst(doc.Text, span); err != nil {
		return models.Tag{}, err
	}

	existing, err := s.tagRepository.ListByDocument(ctx, doc.ID)
	if err != nil {
		log.Err(err).Str("func", "*tagService.Add").Int64("document_id", doc.ID).Msg("listing tags failed")
		return models.Tag{}, fmt.Errorf("listing tags failed: %w", err)
	}
	if spans.HasPosition(existing, span.Start, span.End) {
		return models.Tag{}, store.ErrDuplicatePosition
	}

	spanID, entityID := spans.AssignIDs(existing, req.SpanID, req.EntityID)

	created, err := s.tagRepository.Create(ctx, models.Tag{
		DocumentID:     doc.ID,
		CategoryID:     category.ID,
		SpanText:       span.Text,
		StartOffset:    span.Start,
		EndOffset:      span.End,
		SpanID:         spanID,
		EntityID:       entityID,
		Annotator:      orDefault(req.Annotator, models.DefaultAnnotator),
		IdentifierType: orDefault(req.IdentifierType, models.DefaultIdentifierType),
		Confidence:     req.Confidence,
		CreatedBy:      actor.UserID,
	})
	if err != nil {
		log.Err(err).Str("func", "*tagService.Add").Int64("document_id", doc.ID).Msg("creating tag failed")
		return models.Tag{}, fmt.Errorf("creating tag failed: %w", err)
	}
	created.CategoryValue = category.Value
	created.CategoryColor = category.BackgroundColor

	return created, nil
}

// Update re-points the category, identifier type or entity id of a tag.
// The annotator is always set to the caller's login.
func (s *tagService) Update(ctx context.Context, actor models.Actor, req models.UpdateTagRequest) (models.Tag, error) {
	tag, err := s.editableTag(ctx, actor, req.TagID)
	if err != nil {
		return models.Tag{}, err
	}

	if req.Category != nil {
		category, err := s.categoryRepository.FindByValue(ctx, strings.TrimSpace(*req.Category))
		if err != nil {
			return models.Tag{}, fmt.Errorf("resolving category %q: %w", *req.Category, err)
		}
		tag.CategoryID = category.ID
		tag.CategoryValue = category.Value
		tag.CategoryColor = category.BackgroundColor
	}
	if req.IdentifierType != nil {
		tag.IdentifierType = orDefault(*req.IdentifierType, models.DefaultIdentifierType)
	}
	if req.EntityID != nil && strings.TrimSpace(*req.EntityID) != "" {
		tag.EntityID = strings.TrimSpace(*req.EntityID)
	}
	tag.Annotator = actor.Login

	if err = s.tagRepository.Update(ctx, tag); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tagService.Update").Int64("tag_id", tag.ID).Msg("updating tag failed")
		return models.Tag{}, fmt.Errorf("updating tag failed: %w", err)
	}

	return tag, nil
}

// Delete removes a tag and, when it led its entity group, promotes the
// remaining member with the smallest span id. Both happen in one transaction.
func (s *tagService) Delete(ctx context.Context, actor models.Actor, req models.DeleteTagRequest) (models.DeleteTagResult, error) {
	result := models.DeleteTagResult{DeletedID: req.TagID, Reparented: []models.Tag{}}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		tag, err := s.editableTag(ctx, actor, req.TagID)
		if err != nil {
			return err
		}

		if err = s.tagRepository.Delete(ctx, tag.ID); err != nil {
			return err
		}

		remaining, err := s.tagRepository.ListByDocument(ctx, tag.DocumentID)
		if err != nil {
			return err
		}

		changed := spans.Reparent(remaining, tag)
		if len(changed) == 0 {
			return nil
		}
		if err = s.tagRepository.UpdateEntityIDs(ctx, changed); err != nil {
			return err
		}
		result.Reparented = changed

		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tagService.Delete").Int64("tag_id", req.TagID).Msg("deleting tag failed")
		return models.DeleteTagResult{}, fmt.Errorf("deleting tag failed: %w", err)
	}

	return result, nil
}

// TrimExisting strips surrounding whitespace from every stored tag and
// shifts its offsets accordingly. Whitespace-only tags and tags whose trimmed
// position is already taken are left unchanged.
func (s *tagService) TrimExisting(ctx context.Context, actor models.Actor) (int, error) {
	log := logger.FromContext(ctx)

	if !actor.IsAdmin {
		return 0, ErrPermissionDenied
	}

	updated := 0
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		updated = 0

		tags, err := s.tagRepository.ListAll(ctx)
		if err != nil {
			return err
		}

		taken := make(map[[3]int64]bool, len(tags))
		for _, tag := range tags {
			taken[position(tag.DocumentID, tag.StartOffset, tag.EndOffset)] = true
		}

		for _, tag := range tags {
			if strings.TrimFunc(tag.SpanText, unicode.IsSpace) == tag.SpanText {
				continue
			}

			span, err := spans.Trim(tag.SpanText, tag.StartOffset, tag.EndOffset)
			if err != nil {
				log.Warn().Int64("tag_id", tag.ID).Msg("tag is whitespace only, left unchanged")
				continue
			}

			newPos := position(tag.DocumentID, span.Start, span.End)
			if taken[newPos] {
				log.Warn().Int64("tag_id", tag.ID).Msg("trimmed position already tagged, left unchanged")
				continue
			}
			delete(taken, position(tag.DocumentID, tag.StartOffset, tag.EndOffset))
			taken[newPos] = true

			log.Debug().
				Int64("tag_id", tag.ID).
				Str("from", tag.SpanText).
				Str("to", span.Text).
				Msg("trimming tag")

			tag.SpanText, tag.StartOffset, tag.EndOffset = span.Text, span.Start, span.End
			if err = s.tagRepository.Update(ctx, tag); err != nil {
				return err
			}
			updated++
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*tagService.TrimExisting").Msg("trimming tags failed")
		return 0, fmt.Errorf("trimming tags failed: %w", err)
	}

	log.Info().Int("updated", updated).Msg("existing tags trimmed")

	return updated, nil
}

// editableTag loads a tag and checks the actor created it, owns its document
// or is an admin.
func (s *tagService) editableTag(ctx context.Context, actor models.Actor, tagID int64) (models.Tag, error) {
	tag, err := s.tagRepository.Get(ctx, tagID)
	if err != nil {
		return models.Tag{}, fmt.Errorf("loading tag %d: %w", tagID, err)
	}
	if actor.IsAdmin || (tag.CreatedBy != 0 && tag.CreatedBy == actor.UserID) {
		return tag, nil
	}

	doc, err := s.documentRepository.Get(ctx, tag.DocumentID)
	if err != nil {
		return models.Tag{}, fmt.Errorf("loading document %d: %w", tag.DocumentID, err)
	}
	if doc.OwnerID != actor.UserID {
		return models.Tag{}, ErrPermissionDenied
	}

	return tag, nil
}

func position(documentID int64, start, end int) [3]int64 {
	return [3]int64{documentID, int64(start), int64(end)}
}
