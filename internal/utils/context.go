// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for carrying the authenticated actor in a context,
// HTTP response writing, HTTP client initialization and JWT token
// generation and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-pii-labeler/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ActorCtxKey is the key under which the auth middleware stores the
// authenticated [models.Actor].
var ActorCtxKey = contextKey("actor")

// TokenCtxKey is the key under which the auth middleware stores the parsed
// bearer [models.Token]. Logout reads it to revoke the token.
var TokenCtxKey = contextKey("token")

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, ActorCtxKey, actor)
}

// GetActorFromContext retrieves the authenticated caller from the context.
//
// Returns the actor and an ok flag:
//   - ok == true : value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
//
// Example usage:
//
//	actor, ok := utils.GetActorFromContext(ctx)
//	if !ok {
//	    // handle unauthenticated request
//	}
func GetActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorCtxKey).(models.Actor)
	return actor, ok
}

// GetTokenFromContext retrieves the bearer token stored by the auth middleware.
func GetTokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(models.Token)
	return token, ok
}
