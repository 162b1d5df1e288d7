package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/models"
)

type categoryRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every category ordered by value.
func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCategoriesQuery(r.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.List").Msg("failed to list categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0, 32)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Value, &c.BackgroundColor, &c.Description); err != nil {
			log.Err(err).Str("func", "*categoryRepository.List").Msg("failed to scan category row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

// FindByValue returns [ErrCategoryNotFound] for an unknown label.
func (r *categoryRepository) FindByValue(ctx context.Context, value string) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindCategoryQuery(r.db.builder, value)
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var c models.Category
	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.Value, &c.BackgroundColor, &c.Description)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Category{}, ErrCategoryNotFound
	case err != nil:
		log.Err(err).Str("func", "*categoryRepository.FindByValue").Str("value", value).Msg("failed to find category")
		return models.Category{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateCategoryQuery(r.db.builder, category)
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&category.ID); err != nil {
		if r.db.classify(err) == UniqueViolation {
			return models.Category{}, fmt.Errorf("%w: %s", ErrCategoryAlreadyExists, category.Value)
		}
		log.Err(err).Str("func", "*categoryRepository.Create").Str("value", category.Value).Msg("failed to create category")
		return models.Category{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category models.Category) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCategoryQuery(r.db.builder, category)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.Update").Str("value", category.Value).Msg("failed to update category")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// DeleteAll removes every category. It fails with [ErrCategoryInUse] while
// any tag references a category.
func (r *categoryRepository) DeleteAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCategoriesQuery(r.db.builder)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		if r.db.classify(err) == ForeignKeyViolation {
			return ErrCategoryInUse
		}
		log.Err(err).Str("func", "*categoryRepository.DeleteAll").Msg("failed to delete categories")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
