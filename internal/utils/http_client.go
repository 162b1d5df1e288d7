package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultClientTimeout    = 30 * time.Second
	defaultClientRetryCount = 2
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", token)
//	resp, err := client.R().Get("/api/documents")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient bound to baseURL.
//
// A non-empty token is sent as a Bearer Authorization header on every
// request. Requests time out after 30 seconds and transport failures are
// retried twice. Each call returns an independent client instance.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultClientTimeout).
		SetRetryCount(defaultClientRetryCount)

	if token != "" {
		client.SetAuthToken(token)
	}

	return &HTTPClient{Client: client}
}
