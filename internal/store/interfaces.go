package store

import (
	"context"

	"github.com/MKhiriev/go-pii-labeler/models"
)

// Transactor runs fn in a transaction that repositories join through ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	SetAdmin(ctx context.Context, userID int64, isAdmin bool) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByValue(ctx context.Context, value string) (models.Category, error)
	Create(ctx context.Context, category models.Category) (models.Category, error)
	// Update rewrites color and description of the category with the same value.
	Update(ctx context.Context, category models.Category) error
	DeleteAll(ctx context.Context) error
}

type DocumentRepository interface {
	Create(ctx context.Context, doc models.Document) (models.Document, error)
	Get(ctx context.Context, id int64) (models.Document, error)
	List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error)
	// ExistingDataIDs returns which of dataIDs are already stored. An ownerID
	// of 0 searches every owner.
	ExistingDataIDs(ctx context.Context, ownerID int64, dataIDs []string) ([]string, error)
	// Adjacent returns the closest lower and higher document ids. An ownerID
	// of 0 searches every owner.
	Adjacent(ctx context.Context, id, ownerID int64) (prev, next *int64, err error)
	Delete(ctx context.Context, id int64) error
}

type TagRepository interface {
	Create(ctx context.Context, tag models.Tag) (models.Tag, error)
	Get(ctx context.Context, id int64) (models.Tag, error)
	ListByDocument(ctx context.Context, documentID int64) ([]models.Tag, error)
	ListByDocuments(ctx context.Context, documentIDs []int64) (map[int64][]models.Tag, error)
	ListAll(ctx context.Context) ([]models.Tag, error)
	Update(ctx context.Context, tag models.Tag) error
	UpdateEntityIDs(ctx context.Context, tags []models.Tag) error
	Delete(ctx context.Context, id int64) error
}
