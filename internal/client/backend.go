package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pii-labeler/internal/archive"
	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/session"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/models"
)

type database struct {
	storages *store.Storages
	services *service.Services
}

// OpenDatabase connects to cfg.Storage.DB and builds the services on top of
// it. Uploads are not archived and revocations stay in memory.
func OpenDatabase(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) (Backend, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error creating storages: %w", err)
	}

	services, err := service.NewServices(storages, session.NewMemoryStore(), archive.Nop{}, cfg, build, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	return &database{storages: storages, services: services}, nil
}

func (d *database) Migrate() error {
	return d.storages.Migrate()
}

func (d *database) Services() *service.Services {
	return d.services
}

func (d *database) Close() error {
	return d.storages.Close()
}
