package service

import (
	"fmt"

	"github.com/MKhiriev/go-pii-labeler/internal/archive"
	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/session"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/models"
)

type Services struct {
	AuthService     AuthService
	CategoryService CategoryService
	DocumentService DocumentService
	TagService      TagService
	AppInfoService  AppInfoService
}

func NewServices(
	storages *store.Storages,
	revocations session.RevocationStore,
	archiver archive.Archiver,
	cfg *config.StructuredConfig,
	build models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, revocations, cfg.App, logger),
		CategoryService: NewCategoryService(storages.CategoryRepository, storages.DB, logger),
		DocumentService: NewDocumentService(storages, archiver, cfg.Import, logger),
		TagService:      NewTagValidationService().Wrap(NewTagService(storages, logger)),
		AppInfoService:  appInfo,
	}, nil
}
