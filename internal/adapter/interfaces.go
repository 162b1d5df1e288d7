// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the labeler HTTP API, used by
// labelerctl to push and pull JSONL corpora against a running server.
//
// Failed requests are mapped by mapHTTPError to the sentinel errors in
// errors.go, so callers can match them with [errors.Is] (e.g. [ErrConflict]
// for a duplicate data_id, [ErrUnauthorized] for a missing or revoked token).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pii-labeler/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to a labeler server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Login exchanges credentials for a bearer token and stores it.
	Login(ctx context.Context, login, password string) error

	// Upload imports a JSONL file. filename is only informational.
	Upload(ctx context.Context, filename string, jsonl []byte) (models.ImportResult, error)

	// Export returns the JSONL export of the given documents.
	Export(ctx context.Context, ids []int64) ([]byte, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
