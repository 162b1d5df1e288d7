package handler

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServices returns an empty *service.Services. http.NewHandler only
// stores the pointer, so no service needs to be wired for construction.
func newTestServices() *service.Services {
	return &service.Services{}
}

// TestNewHandlers_HTTPAddress verifies that an HTTP address yields an HTTP
// handler and no error.
func TestNewHandlers_HTTPAddress(t *testing.T) {
	cfg := config.Server{
		HTTPAddress:    ":8080",
		RequestTimeout: 5 * time.Second,
		MaxUploadBytes: 1 << 20,
	}

	h, err := NewHandlers(newTestServices(), cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

// TestNewHandlers_NoAddress verifies that without an HTTP address
// NewHandlers returns errNoHandlersAreCreated and a nil *Handlers.
func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(newTestServices(), config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_RouterIsUsable(t *testing.T) {
	h, err := NewHandlers(newTestServices(), config.Server{HTTPAddress: "localhost:0"}, logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, h.HTTP.Init())
}
