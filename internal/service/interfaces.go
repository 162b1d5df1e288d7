package service

import (
	"context"

	"github.com/MKhiriev/go-pii-labeler/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	// ParseToken validates tokenString and rejects revoked tokens.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// Logout revokes token until it expires.
	Logout(ctx context.Context, token models.Token) error
	// EnsureAdmin creates the admin account or promotes an existing one.
	EnsureAdmin(ctx context.Context, login, password string) (models.User, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Seed(ctx context.Context, entries []models.CategorySeed, mode models.SeedMode) (models.SeedResult, error)
}

type DocumentService interface {
	// Import stores every record of a JSONL upload in one transaction.
	Import(ctx context.Context, actor models.Actor, raw []byte) (models.ImportResult, error)
	// Export renders the visible documents among ids as JSONL.
	Export(ctx context.Context, actor models.Actor, ids []int64) ([]byte, error)
	// ExportXLSX renders the visible documents among ids as a workbook.
	ExportXLSX(ctx context.Context, actor models.Actor, ids []int64) ([]byte, error)
	List(ctx context.Context, actor models.Actor, limit int) ([]models.Document, error)
	Detail(ctx context.Context, actor models.Actor, id int64) (models.DocumentDetail, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	// BulkDelete removes the visible documents among ids and returns how many were removed.
	BulkDelete(ctx context.Context, actor models.Actor, ids []int64) (int, error)
}

type TagService interface {
	Add(ctx context.Context, actor models.Actor, req models.AddTagRequest) (models.Tag, error)
	Update(ctx context.Context, actor models.Actor, req models.UpdateTagRequest) (models.Tag, error)
	Delete(ctx context.Context, actor models.Actor, req models.DeleteTagRequest) (models.DeleteTagResult, error)
	// TrimExisting strips surrounding whitespace from stored tags and
	// returns how many were changed.
	TrimExisting(ctx context.Context, actor models.Actor) (int, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// TagServiceWrapper defines middleware composition for TagService.
// Implementations wrap an existing TagService to add behavior such as
// logging or validating.
type TagServiceWrapper interface {
	Wrap(TagService) TagService // returns a decorated TagService applying additional behavior
}
