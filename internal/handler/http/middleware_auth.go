package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores both the token and the
// resulting [models.Actor] in the request context before delegating to the
// next handler.
//
// Requests are rejected with 401 Unauthorized when the header is missing or
// malformed, or when the token is expired, invalid or revoked.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrNotAuthenticated, ErrEmptyAuthorizationHeader))
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrNotAuthenticated, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenRevoked) {
				logger.FromRequest(r).Info().Str("func", "*Handler.auth").Msg("revoked token presented")
			}
			writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrNotAuthenticated, err))
			return
		}

		ctx = utils.WithActor(ctx, token.Actor())
		ctx = context.WithValue(ctx, utils.TokenCtxKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly rejects callers whose token does not carry the admin claim.
// It must run after auth.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := utils.GetActorFromContext(r.Context())
		if !ok {
			writeError(w, r, "*Handler.adminOnly", ErrNotAuthenticated)
			return
		}
		if !actor.IsAdmin {
			writeError(w, r, "*Handler.adminOnly", ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the form "Bearer <token>".
//
// It returns [ErrInvalidAuthorizationHeader] when the scheme is missing or
// is not Bearer, and [ErrEmptyToken] when the token part is blank.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, tokenString, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

// actorFromRequest returns the caller stored by auth.
func actorFromRequest(r *http.Request) (models.Actor, error) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		return models.Actor{}, ErrNotAuthenticated
	}
	return actor, nil
}
