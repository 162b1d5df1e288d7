// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Request errors reported by handlers before the service layer is reached.
var (
	ErrInvalidJSON        = errors.New("invalid JSON was passed")
	ErrInvalidDocumentID  = errors.New("invalid document id")
	ErrInvalidLimit       = errors.New("invalid limit")
	ErrNoFileUploaded     = errors.New("no file uploaded")
	ErrUploadTooLarge     = errors.New("upload exceeds the size limit")
	ErrNotAuthenticated   = errors.New("request is not authenticated")
	ErrAdminRequired      = errors.New("admin privileges required")
	ErrInvalidCredentials = errors.New("invalid login/password")
	ErrInvalidGzipBody    = errors.New("invalid gzip request body")
	ErrRouteNotFound      = errors.New("route not found")
)
