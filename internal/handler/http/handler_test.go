package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, config.Server{}, logger.Nop())

	require.NotNil(t, h)
	assert.NotNil(t, h.validator)
}

func TestNewHandler_StoresServices(t *testing.T) {
	svc := &service.Services{}
	h := NewHandler(svc, config.Server{}, logger.Nop())

	assert.Equal(t, svc, h.services)
}

func TestNewHandler_StoresLogger(t *testing.T) {
	log := logger.Nop()
	h := NewHandler(&service.Services{}, config.Server{}, log)

	assert.Equal(t, log, h.logger)
}

func TestNewHandler_UploadLimit(t *testing.T) {
	h := NewHandler(&service.Services{}, config.Server{}, logger.Nop())
	assert.Equal(t, int64(defaultMaxUploadBytes), h.maxUploadBytes)

	h = NewHandler(&service.Services{}, config.Server{MaxUploadBytes: 1024}, logger.Nop())
	assert.Equal(t, int64(1024), h.maxUploadBytes)
}

func TestNewHandler_RequestTimeout(t *testing.T) {
	h := NewHandler(&service.Services{}, config.Server{RequestTimeout: 3 * time.Second}, logger.Nop())

	assert.Equal(t, 3*time.Second, h.requestTimeout)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, config.Server{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, config.Server{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

// newTestHandlerWithAppInfoService builds a Handler suitable for route-registration tests.
// AppInfoService is mocked so that GET /api/version does not panic.
func newTestHandlerWithAppInfoService(t *testing.T) *Handler {
	t.Helper()

	return newTestHandler(t, &service.Services{
		AppInfoService: &mockAppInfoService{version: "test-version"},
	})
}

func TestInit_ReturnsRouter(t *testing.T) {
	router := newTestHandlerWithAppInfoService(t).Init()

	require.NotNil(t, router)
}

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

// expectedRoutes lists every route that Init() must register.
var expectedRoutes = []routeCase{
	// user (register/login answer 400 on an empty body, logout 401)
	{http.MethodPost, "/api/user/register"},
	{http.MethodPost, "/api/user/login"},
	{http.MethodPost, "/api/user/logout"},
	// categories
	{http.MethodGet, "/api/categories"},
	// documents (auth middleware will return 401, not 404/405)
	{http.MethodGet, "/api/documents"},
	{http.MethodGet, "/api/documents/1"},
	{http.MethodPost, "/api/documents/upload"},
	{http.MethodPost, "/api/documents/export"},
	{http.MethodPost, "/api/documents/export/xlsx"},
	{http.MethodPost, "/api/documents/delete"},
	{http.MethodPost, "/api/documents/bulk-delete"},
	// tags
	{http.MethodPost, "/api/tags/add"},
	{http.MethodPost, "/api/tags/update"},
	{http.MethodPost, "/api/tags/delete"},
	// admin
	{http.MethodPost, "/api/admin/tags/trim"},
	{http.MethodPost, "/api/admin/categories/seed"},
	// version: no auth, handler is called directly
	{http.MethodGet, "/api/version"},
	{http.MethodGet, "/api/version/build"},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newTestHandlerWithAppInfoService(t).Init()

	for _, tc := range expectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			// A registered route returns anything except 404 (not found) or
			// 405 (method not allowed). Auth-protected routes return 401,
			// that still proves the route exists.
			assert.NotEqual(t, http.StatusNotFound, rec.Code,
				"route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code,
				"method not allowed: %s %s", tc.method, tc.path)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	router := newTestHandlerWithAppInfoService(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newTestHandlerWithAppInfoService(t).Init()

	// POST /api/version is not registered: only GET is.
	req := httptest.NewRequest(http.MethodPost, "/api/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
