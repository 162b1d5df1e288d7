package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service/logger setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("items"))
	})
	router.Post("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Get("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(r, "id")))
	})
	router.Delete("/api/resource", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	router.NotFound(routeNotFound)

	return router
}

// ---- Table test ----

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"GET /api/items: registered", http.MethodGet, "/api/items", http.StatusOK},
		{"POST /api/items: registered", http.MethodPost, "/api/items", http.StatusCreated},
		{"GET /api/items/{id}: registered", http.MethodGet, "/api/items/42", http.StatusOK},
		{"DELETE /api/resource: registered", http.MethodDelete, "/api/resource", http.StatusNoContent},
		{"DELETE /api/items: method not registered → 404", http.MethodDelete, "/api/items", http.StatusNotFound},
		{"PATCH /api/items: method not registered → 404", http.MethodPatch, "/api/items", http.StatusNotFound},
		{"POST /api/items/{id}: method not registered → 404", http.MethodPost, "/api/items/42", http.StatusNotFound},
		{"GET /api/resource: method not registered → 404", http.MethodGet, "/api/resource", http.StatusNotFound},
		{"GET /api/nonexistent: route does not exist", http.MethodGet, "/api/nonexistent", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/items/7", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "7", rr.Body.String())
}

// TestCheckHTTPMethod_JSONEnvelope checks that wrong methods get the same
// body shape as any other failure.
func TestCheckHTTPMethod_JSONEnvelope(t *testing.T) {
	router := buildRouter()

	for _, method := range []string{http.MethodPut, http.MethodOptions, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/items", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
			if method != http.MethodHead {
				assert.Contains(t, rr.Body.String(), `"success":false`)
				assert.Contains(t, rr.Body.String(), ErrRouteNotFound.Error())
			}
		})
	}
}

// TestCheckHTTPMethod_DirectCallWithRegisteredMethod covers the handler
// being invoked for a method the router does serve.
func TestCheckHTTPMethod_DirectCallWithRegisteredMethod(t *testing.T) {
	router := buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rr := httptest.NewRecorder()
	CheckHTTPMethod(router).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "items", rr.Body.String())
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()
	const n = 50
	done := make(chan bool, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			method, want := http.MethodGet, http.StatusOK
			if i%2 == 1 {
				method, want = http.MethodDelete, http.StatusNotFound
			}
			req := httptest.NewRequest(method, "/api/items", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			done <- rr.Code == want
		}(i)
	}

	for i := 0; i < n; i++ {
		assert.True(t, <-done)
	}
}
