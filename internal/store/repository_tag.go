package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// tagRepository implements [TagRepository] against "pii_tags". Reads join
// the category registry so every tag carries its label and color.
type tagRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewTagRepository(db *DB, logger *logger.Logger) TagRepository {
	logger.Debug().Msg("creating tag repository")
	return &tagRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the tag and returns it with ID and CreatedAt set.
// A tag at an occupied position yields [ErrDuplicatePosition].
func (r *tagRepository) Create(ctx context.Context, tag models.Tag) (models.Tag, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateTagQuery(r.db.builder, tag)
	if err != nil {
		return models.Tag{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&tag.ID, scanTime(&tag.CreatedAt))
	if err != nil {
		if mapped := r.constraintError(err); mapped != nil {
			return models.Tag{}, mapped
		}
		log.Err(err).
			Str("func", "*tagRepository.Create").
			Int64("document_id", tag.DocumentID).
			Int("start_offset", tag.StartOffset).
			Int("end_offset", tag.EndOffset).
			Msg("failed to create tag")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return tag, nil
}

// Get returns [ErrTagNotFound] for an unknown id.
func (r *tagRepository) Get(ctx context.Context, id int64) (models.Tag, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetTagQuery(r.db.builder, id)
	if err != nil {
		return models.Tag{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tag, err := scanTag(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Tag{}, ErrTagNotFound
	case err != nil:
		log.Err(err).Str("func", "*tagRepository.Get").Int64("tag_id", id).Msg("failed to get tag")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return tag, nil
}

// ListByDocument returns the document's tags ordered by id.
func (r *tagRepository) ListByDocument(ctx context.Context, documentID int64) ([]models.Tag, error) {
	return r.list(ctx, []int64{documentID})
}

// ListByDocuments groups the tags of several documents by document id.
func (r *tagRepository) ListByDocuments(ctx context.Context, documentIDs []int64) (map[int64][]models.Tag, error) {
	byDocument := make(map[int64][]models.Tag, len(documentIDs))
	if len(documentIDs) == 0 {
		return byDocument, nil
	}

	tags, err := r.list(ctx, documentIDs)
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		byDocument[tag.DocumentID] = append(byDocument[tag.DocumentID], tag)
	}

	return byDocument, nil
}

func (r *tagRepository) ListAll(ctx context.Context) ([]models.Tag, error) {
	return r.list(ctx, nil)
}

func (r *tagRepository) list(ctx context.Context, documentIDs []int64) ([]models.Tag, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTagsQuery(r.db.builder, documentIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.list").Int("documents", len(documentIDs)).Msg("failed to list tags")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0, 32)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			log.Err(err).Str("func", "*tagRepository.list").Msg("failed to scan tag row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tags, nil
}

// Update rewrites the mutable columns of the tag with tag.ID.
func (r *tagRepository) Update(ctx context.Context, tag models.Tag) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTagQuery(r.db.builder, tag)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := r.constraintError(err); mapped != nil {
			return mapped
		}
		log.Err(err).Str("func", "*tagRepository.Update").Int64("tag_id", tag.ID).Msg("failed to update tag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrTagNotFound
	}

	return nil
}

// UpdateEntityIDs persists the entity id of every given tag.
func (r *tagRepository) UpdateEntityIDs(ctx context.Context, tags []models.Tag) error {
	log := logger.FromContext(ctx)

	for i, tag := range tags {
		query, args, err := buildUpdateEntityIDQuery(r.db.builder, tag.ID, tag.EntityID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "*tagRepository.UpdateEntityIDs").
				Int("iteration", i).
				Int64("tag_id", tag.ID).
				Msg("failed to update entity id")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteTagQuery(r.db.builder, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.Delete").Int64("tag_id", id).Msg("failed to delete tag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrTagNotFound
	}

	return nil
}

func (r *tagRepository) constraintError(err error) error {
	switch r.db.classify(err) {
	case UniqueViolation:
		return ErrDuplicatePosition
	case CheckViolation:
		return ErrInvalidTag
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrInvalidTag, err)
	}

	return nil
}

func scanTag(row rowScanner) (models.Tag, error) {
	var tag models.Tag

	err := row.Scan(
		&tag.ID,
		&tag.DocumentID,
		&tag.CategoryID,
		&tag.CategoryValue,
		&tag.CategoryColor,
		&tag.SpanText,
		&tag.StartOffset,
		&tag.EndOffset,
		&tag.SpanID,
		&tag.EntityID,
		&tag.Annotator,
		&tag.IdentifierType,
		&tag.Confidence,
		&tag.CreatedBy,
		scanTime(&tag.CreatedAt),
	)

	return tag, err
}
