// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-pii-labeler/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestActorCtxKey(t *testing.T) {
	if ActorCtxKey.String() != "actor" {
		t.Errorf("expected 'actor', got '%s'", ActorCtxKey.String())
	}
}

func TestGetActorFromContext_Success(t *testing.T) {
	want := models.Actor{UserID: 42, Login: "alice", IsAdmin: true}
	ctx := WithActor(context.Background(), want)

	actor, ok := GetActorFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if actor != want {
		t.Errorf("expected %+v, got %+v", want, actor)
	}
}

func TestGetActorFromContext_Missing(t *testing.T) {
	actor, ok := GetActorFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if actor != (models.Actor{}) {
		t.Errorf("expected zero actor, got %+v", actor)
	}
}

func TestGetActorFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ActorCtxKey, int64(42))

	if _, ok := GetActorFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetActorFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.Actor{UserID: 99})

	if _, ok := GetActorFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}

func TestGetTokenFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TokenCtxKey, models.Token{ID: "jti-1"})

	token, ok := GetTokenFromContext(ctx)
	if !ok || token.ID != "jti-1" {
		t.Fatalf("expected token jti-1, got %+v (ok=%v)", token, ok)
	}

	if _, ok := GetTokenFromContext(context.Background()); ok {
		t.Fatal("expected ok=false on empty context")
	}
}
