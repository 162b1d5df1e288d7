package http

import (
	"time"

	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/validators"
)

// defaultMaxUploadBytes caps uploads when the server config does not.
const defaultMaxUploadBytes = 32 << 20

type Handler struct {
	services *service.Services

	maxUploadBytes int64
	requestTimeout time.Duration

	// validator checks document requests; tag requests are validated by
	// the service wrapper.
	validator validators.Validator

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	maxUploadBytes := cfg.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}

	return &Handler{
		services:       services,
		maxUploadBytes: maxUploadBytes,
		requestTimeout: cfg.RequestTimeout,
		validator:      validators.NewTagValidator(),
		logger:         logger,
	}
}
