package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/models"
)

type categoryService struct {
	categoryRepository store.CategoryRepository
	transactor         store.Transactor

	logger *logger.Logger
}

func NewCategoryService(categoryRepository store.CategoryRepository, transactor store.Transactor, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		transactor:         transactor,
		logger:             logger,
	}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepository.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryService.List").Msg("listing categories failed")
		return nil, fmt.Errorf("listing categories failed: %w", err)
	}

	return categories, nil
}

// Seed applies entries to the registry in one transaction.
//
// SeedAdd creates missing values only. SeedUpdate also rewrites color and
// description of existing values. SeedClear removes every category first and
// fails with store.ErrCategoryInUse while tags still reference one.
func (s *categoryService) Seed(ctx context.Context, entries []models.CategorySeed, mode models.SeedMode) (models.SeedResult, error) {
	log := logger.FromContext(ctx)

	if mode == "" {
		mode = models.SeedAdd
	}
	if mode != models.SeedAdd && mode != models.SeedUpdate && mode != models.SeedClear {
		return models.SeedResult{}, fmt.Errorf("%w: %q", ErrInvalidSeedMode, mode)
	}

	categories := make([]models.Category, 0, len(entries))
	for i, entry := range entries {
		category, err := categoryFromSeed(entry)
		if err != nil {
			return models.SeedResult{}, fmt.Errorf("%w at index %d", err, i)
		}
		categories = append(categories, category)
	}

	var result models.SeedResult
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		result = models.SeedResult{}

		if mode == models.SeedClear {
			if err := s.categoryRepository.DeleteAll(ctx); err != nil {
				return err
			}
		}

		for _, category := range categories {
			_, err := s.categoryRepository.FindByValue(ctx, category.Value)
			switch {
			case errors.Is(err, store.ErrCategoryNotFound):
				if _, err = s.categoryRepository.Create(ctx, category); err != nil {
					return err
				}
				result.Created++
			case err != nil:
				return err
			case mode == models.SeedUpdate:
				if err = s.categoryRepository.Update(ctx, category); err != nil {
					return err
				}
				result.Updated++
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*categoryService.Seed").Str("mode", string(mode)).Msg("seeding categories failed")
		return models.SeedResult{}, fmt.Errorf("seeding categories failed: %w", err)
	}

	log.Info().
		Str("mode", string(mode)).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Msg("categories seeded")

	return result, nil
}

func categoryFromSeed(entry models.CategorySeed) (models.Category, error) {
	value := strings.TrimSpace(entry.Value)
	if value == "" {
		return models.Category{}, fmt.Errorf("%w: empty value", ErrInvalidSeedEntry)
	}

	description := strings.TrimSpace(entry.Description)
	if description == "" {
		description = value + " related personal information"
	}

	return models.Category{
		Value:           value,
		BackgroundColor: strings.TrimSpace(entry.Background),
		Description:     description,
	}, nil
}
