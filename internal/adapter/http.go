package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// uploadFormField is the multipart field the server reads uploads from.
const uploadFormField = "jsonl_file"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds a [ServerAdapter] for the server at address.
// A scheme-less address such as "localhost:8080" is treated as http.
func NewHTTPServerAdapter(address, token string, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, ""),
		token:  strings.TrimSpace(token),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login posts the credentials to /api/user/login and keeps the bearer token
// from the Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, login, password string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: login, Password: password}).
		Post("/api/user/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	h.logger.Debug().Str("func", "*httpServerAdapter.Login").Str("login", login).Msg("logged in")

	return nil
}

// Upload sends jsonl as a multipart file to /api/documents/upload.
func (h *httpServerAdapter) Upload(ctx context.Context, filename string, jsonl []byte) (models.ImportResult, error) {
	var result models.ImportResponse

	resp, err := h.authedRequest(ctx).
		SetFileReader(uploadFormField, filename, bytes.NewReader(jsonl)).
		SetResult(&result).
		Post("/api/documents/upload")
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ImportResult{}, err
	}

	h.logger.Debug().Str("func", "*httpServerAdapter.Upload").
		Int("documents", result.Documents).Int("tags", result.Tags).Msg("file uploaded")

	return result.ImportResult, nil
}

// Export posts the ids to /api/documents/export and returns the raw JSONL.
func (h *httpServerAdapter) Export(ctx context.Context, ids []int64) ([]byte, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.DocumentIDsRequest{DocumentIDs: ids}).
		Post("/api/documents/export")
	if err != nil {
		return nil, fmt.Errorf("export request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
