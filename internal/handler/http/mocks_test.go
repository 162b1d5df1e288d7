package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	logoutFn       func(ctx context.Context, token models.Token) error
	ensureAdminFn  func(ctx context.Context, login, password string) (models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) Logout(ctx context.Context, token models.Token) error {
	return m.logoutFn(ctx, token)
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context, login, password string) (models.User, error) {
	return m.ensureAdminFn(ctx, login, password)
}

// ─────────────────────────────────────────────
// Mock CategoryService
// ─────────────────────────────────────────────

type mockCategoryService struct {
	listFn func(ctx context.Context) ([]models.Category, error)
	seedFn func(ctx context.Context, entries []models.CategorySeed, mode models.SeedMode) (models.SeedResult, error)
}

func (m *mockCategoryService) List(ctx context.Context) ([]models.Category, error) {
	return m.listFn(ctx)
}

func (m *mockCategoryService) Seed(ctx context.Context, entries []models.CategorySeed, mode models.SeedMode) (models.SeedResult, error) {
	return m.seedFn(ctx, entries, mode)
}

// ─────────────────────────────────────────────
// Mock DocumentService
// ─────────────────────────────────────────────

type mockDocumentService struct {
	importFn     func(ctx context.Context, actor models.Actor, raw []byte) (models.ImportResult, error)
	exportFn     func(ctx context.Context, actor models.Actor, ids []int64) ([]byte, error)
	exportXLSXFn func(ctx context.Context, actor models.Actor, ids []int64) ([]byte, error)
	listFn       func(ctx context.Context, actor models.Actor, limit int) ([]models.Document, error)
	detailFn     func(ctx context.Context, actor models.Actor, id int64) (models.DocumentDetail, error)
	deleteFn     func(ctx context.Context, actor models.Actor, id int64) error
	bulkDeleteFn func(ctx context.Context, actor models.Actor, ids []int64) (int, error)
}

func (m *mockDocumentService) Import(ctx context.Context, actor models.Actor, raw []byte) (models.ImportResult, error) {
	return m.importFn(ctx, actor, raw)
}

func (m *mockDocumentService) Export(ctx context.Context, actor models.Actor, ids []int64) ([]byte, error) {
	return m.exportFn(ctx, actor, ids)
}

func (m *mockDocumentService) ExportXLSX(ctx context.Context, actor models.Actor, ids []int64) ([]byte, error) {
	return m.exportXLSXFn(ctx, actor, ids)
}

func (m *mockDocumentService) List(ctx context.Context, actor models.Actor, limit int) ([]models.Document, error) {
	return m.listFn(ctx, actor, limit)
}

func (m *mockDocumentService) Detail(ctx context.Context, actor models.Actor, id int64) (models.DocumentDetail, error) {
	return m.detailFn(ctx, actor, id)
}

func (m *mockDocumentService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	return m.deleteFn(ctx, actor, id)
}

func (m *mockDocumentService) BulkDelete(ctx context.Context, actor models.Actor, ids []int64) (int, error) {
	return m.bulkDeleteFn(ctx, actor, ids)
}

// ─────────────────────────────────────────────
// Mock TagService
// ─────────────────────────────────────────────

type mockTagService struct {
	addFn    func(ctx context.Context, actor models.Actor, req models.AddTagRequest) (models.Tag, error)
	updateFn func(ctx context.Context, actor models.Actor, req models.UpdateTagRequest) (models.Tag, error)
	deleteFn func(ctx context.Context, actor models.Actor, req models.DeleteTagRequest) (models.DeleteTagResult, error)
	trimFn   func(ctx context.Context, actor models.Actor) (int, error)
}

func (m *mockTagService) Add(ctx context.Context, actor models.Actor, req models.AddTagRequest) (models.Tag, error) {
	return m.addFn(ctx, actor, req)
}

func (m *mockTagService) Update(ctx context.Context, actor models.Actor, req models.UpdateTagRequest) (models.Tag, error) {
	return m.updateFn(ctx, actor, req)
}

func (m *mockTagService) Delete(ctx context.Context, actor models.Actor, req models.DeleteTagRequest) (models.DeleteTagResult, error) {
	return m.deleteFn(ctx, actor, req)
}

func (m *mockTagService) TrimExisting(ctx context.Context, actor models.Actor) (int, error) {
	return m.trimFn(ctx, actor)
}

// ─────────────────────────────────────────────
// Mock AppInfoService
// ─────────────────────────────────────────────

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(m.version, "", "")
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	testActor = models.Actor{UserID: 5, Login: "alice"}
	testAdmin = models.Actor{UserID: 1, Login: "admin", IsAdmin: true}
)

// newTestHandler builds a Handler over svcs with default server limits.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, config.Server{}, logger.Nop())
}

// withActor attaches actor to req the way the auth middleware does.
func withActor(req *http.Request, actor models.Actor) *http.Request {
	return req.WithContext(utils.WithActor(req.Context(), actor))
}
