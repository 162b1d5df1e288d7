package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// dataIDBatch keeps IN lists below the driver's bind variable limits.
const dataIDBatch = 500

// documentRepository implements [DocumentRepository] against the
// "documents" table.
type documentRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *documentRepository) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateDocumentQuery(r.db.builder, doc)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).
		Scan(&doc.ID, scanTime(&doc.CreatedAt), scanTime(&doc.UpdatedAt))
	if err != nil {
		log.Err(err).
			Str("func", "*documentRepository.Create").
			Str("data_id", doc.DataID).
			Int64("owner_id", doc.OwnerID).
			Msg("failed to create document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(doc.Provenance) == 0 {
		doc.Provenance = json.RawMessage("{}")
	}

	return doc, nil
}

// Get returns [ErrDocumentNotFound] for an unknown id.
func (r *documentRepository) Get(ctx context.Context, id int64) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetDocumentQuery(r.db.builder, id)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc, err := scanDocument(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Document{}, ErrDocumentNotFound
	case err != nil:
		log.Err(err).Str("func", "*documentRepository.Get").Int64("document_id", id).Msg("failed to get document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return doc, nil
}

func (r *documentRepository) List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDocumentsQuery(r.db.builder, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*documentRepository.List").
			Int64("owner_id", filter.OwnerID).
			Int("ids", len(filter.IDs)).
			Msg("failed to list documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0, 16)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			log.Err(err).Str("func", "*documentRepository.List").Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

func (r *documentRepository) ExistingDataIDs(ctx context.Context, ownerID int64, dataIDs []string) ([]string, error) {
	log := logger.FromContext(ctx)

	found := make([]string, 0)
	for start := 0; start < len(dataIDs); start += dataIDBatch {
		end := min(start+dataIDBatch, len(dataIDs))

		query, args, err := buildExistingDataIDsQuery(r.db.builder, ownerID, dataIDs[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*documentRepository.ExistingDataIDs").Int64("owner_id", ownerID).Msg("failed to query data ids")
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		for rows.Next() {
			var dataID string
			if err := rows.Scan(&dataID); err != nil {
				rows.Close()
				return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			found = append(found, dataID)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
	}

	return found, nil
}

func (r *documentRepository) Adjacent(ctx context.Context, id, ownerID int64) (*int64, *int64, error) {
	prev, err := r.adjacent(ctx, id, ownerID, true)
	if err != nil {
		return nil, nil, err
	}

	next, err := r.adjacent(ctx, id, ownerID, false)
	if err != nil {
		return nil, nil, err
	}

	return prev, next, nil
}

func (r *documentRepository) adjacent(ctx context.Context, id, ownerID int64, prev bool) (*int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildAdjacentQuery(r.db.builder, id, ownerID, prev)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var neighbour sql.NullInt64
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&neighbour); err != nil {
		log.Err(err).Str("func", "*documentRepository.Adjacent").Int64("document_id", id).Bool("prev", prev).Msg("failed to query neighbour")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if !neighbour.Valid {
		return nil, nil
	}

	return &neighbour.Int64, nil
}

// Delete removes the document; its tags cascade.
func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteDocumentQuery(r.db.builder, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.Delete").Int64("document_id", id).Msg("failed to delete document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (models.Document, error) {
	var (
		doc        models.Document
		provenance string
	)

	err := row.Scan(
		&doc.ID,
		&doc.DataID,
		&doc.NumberOfSubjects,
		&provenance,
		&doc.Text,
		&doc.OwnerID,
		scanTime(&doc.CreatedAt),
		scanTime(&doc.UpdatedAt),
		&doc.TagCount,
	)
	if err != nil {
		return models.Document{}, err
	}

	if provenance == "" {
		provenance = "{}"
	}
	doc.Provenance = json.RawMessage(provenance)

	return doc, nil
}
