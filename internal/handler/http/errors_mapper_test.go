package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pii-labeler/internal/jsonl"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/internal/validators"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid json", ErrInvalidJSON, http.StatusBadRequest},
		{"too large", ErrUploadTooLarge, http.StatusRequestEntityTooLarge},
		{"not authenticated", ErrNotAuthenticated, http.StatusUnauthorized},
		{"admin required", ErrAdminRequired, http.StatusForbidden},
		{"malformed line", &jsonl.LineError{Line: 3, Err: errors.New("bad")}, http.StatusBadRequest},
		{"empty ids", validators.ErrEmptyIDs, http.StatusBadRequest},
		{"wrapped permission", fmt.Errorf("tag 4: %w", service.ErrPermissionDenied), http.StatusForbidden},
		{"document not found", store.ErrDocumentNotFound, http.StatusNotFound},
		{"category in use", store.ErrCategoryInUse, http.StatusConflict},
		{"unauthenticated wins over wrapped cause", fmt.Errorf("%w: %w", ErrNotAuthenticated, store.ErrNoUserWasFound), http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "test", store.ErrTagNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"tag was not found"}`, rec.Body.String())
}
