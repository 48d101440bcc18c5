package context

import (
	"context"
	"net/http"

	"portfolio/infrastructure/backend"
	"portfolio/models"
)

type sessionKey struct{}

// NewContextWithSession stores the admin session and exposes its bearer
// token to backend calls made with the returned context.
func NewContextWithSession(ctx context.Context, session models.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey{}, session)
	return backend.WithCredential(ctx, session.Token)
}

func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}

// Username returns the signed in admin, or "" outside admin routes.
func Username(ctx context.Context) string {
	s, ok := GetSessionFromContext(ctx)
	if !ok {
		return ""
	}
	return s.Username
}

type endSessionKey struct{}

// EndFunc forgets the current admin session and clears its cookie.
type EndFunc func(w http.ResponseWriter, r *http.Request)

func WithSessionEnd(ctx context.Context, fn EndFunc) context.Context {
	return context.WithValue(ctx, endSessionKey{}, fn)
}

// EndSession runs the EndFunc stored on the request context, if any.
func EndSession(w http.ResponseWriter, r *http.Request) bool {
	fn, ok := r.Context().Value(endSessionKey{}).(EndFunc)
	if !ok || fn == nil {
		return false
	}
	fn(w, r)
	return true
}
