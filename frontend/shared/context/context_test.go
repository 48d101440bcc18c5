package context

import (
	"context"
	"testing"

	"portfolio/infrastructure/backend"
	"portfolio/models"
)

func TestSessionCarriesCredential(t *testing.T) {
	ctx := NewContextWithSession(context.Background(), models.Session{ID: "s1", Username: "admin", Token: "tok"})

	s, ok := GetSessionFromContext(ctx)
	if !ok || s.ID != "s1" {
		t.Fatalf("expected session in context, got %+v ok=%v", s, ok)
	}
	token, ok := backend.CredentialFromContext(ctx)
	if !ok || token != "tok" {
		t.Fatalf("expected credential tok, got %q ok=%v", token, ok)
	}
	if Username(ctx) != "admin" {
		t.Fatalf("unexpected username %q", Username(ctx))
	}
}

func TestEmptyContext(t *testing.T) {
	if _, ok := GetSessionFromContext(context.Background()); ok {
		t.Fatalf("expected no session")
	}
	if _, ok := backend.CredentialFromContext(context.Background()); ok {
		t.Fatalf("expected no credential")
	}
	if Username(context.Background()) != "" {
		t.Fatalf("expected empty username")
	}
}
