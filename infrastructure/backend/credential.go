package backend

import (
	"context"
	"strings"
)

type credentialKey struct{}

// WithCredential returns a context carrying the admin bearer token.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey{}, strings.TrimSpace(token))
}

// CredentialFromContext returns the bearer token placed by WithCredential.
func CredentialFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(credentialKey{}).(string)
	return token, ok && token != ""
}
