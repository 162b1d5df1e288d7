package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
)

// Storages groups the repositories sharing one database handle. DB doubles
// as the [Transactor] for multi-repository operations.
type Storages struct {
	DB                 *DB
	UserRepository     UserRepository
	CategoryRepository CategoryRepository
	DocumentRepository DocumentRepository
	TagRepository      TagRepository
}

// NewStorages connects to the configured driver and builds every repository.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return newStorages(db, log), nil
}

func newStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                 db,
		UserRepository:     NewUserRepository(db, log),
		CategoryRepository: NewCategoryRepository(db, log),
		DocumentRepository: NewDocumentRepository(db, log),
		TagRepository:      NewTagRepository(db, log),
	}
}

// Migrate applies pending schema migrations.
func (s *Storages) Migrate() error {
	return s.DB.Migrate()
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
