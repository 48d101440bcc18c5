package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio/infrastructure/argon"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/cache"
	"portfolio/infrastructure/flash"
	sessioncookie "portfolio/infrastructure/session"
	"portfolio/infrastructure/sqlite"
	"portfolio/models"
)

const (
	LoginPath     = "/admin/login"
	DashboardPath = "/admin"
)

// Authenticator exchanges admin credentials for a backend bearer token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Deps groups what the login handlers need.
type Deps struct {
	DB           *sqlite.DB
	SessionCache *cache.SessionCache
	Sealer       *argon.Sealer
	Auth         Authenticator
	Audit        *audit.Service
	Flash        *flash.Store
	SecureCookie bool
}

func redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, LoginPath+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

// CreateLoginHandler authenticates against the backend and issues a session cookie.
func CreateLoginHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, "invalid form data")
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if err := backend.ValidateLogin(username, password); err != nil {
			redirectWithError(w, r, "Please enter both username and password.")
			return
		}

		token, err := d.Auth.Login(r.Context(), username, password)
		if err != nil {
			var se *backend.StatusError
			if errors.Is(err, backend.ErrUnauthorized) || (errors.As(err, &se) && se.StatusCode < 500) {
				redirectWithError(w, r, "Invalid username or password.")
				return
			}
			slog.Error("admin login failed", slog.String("username", username), slog.Any("err", err))
			redirectWithError(w, r, "Login failed. Please try again.")
			return
		}

		now := time.Now()
		session := models.Session{
			ID:        newSessionID(),
			Username:  username,
			Token:     token,
			ExpiresAt: sessioncookie.ExpiryForToken(token, now),
		}
		if err := persistSession(r.Context(), d.DB, d.Sealer, session); err != nil {
			slog.Error("persist session failed", slog.String("username", username), slog.Any("err", err))
			redirectWithError(w, r, "failed to create session")
			return
		}
		d.SessionCache.Add(session)

		if d.Audit != nil {
			if err := d.Audit.Record(r.Context(), username, audit.ActionLogin, audit.EntitySession, "", nil, nil); err != nil {
				slog.Error("write login audit failed", slog.Any("err", err))
			}
		}

		http.SetCookie(w, sessioncookie.SessionCookie(session.ID, sessioncookie.MaxAgeSeconds(session.ExpiresAt, now), d.SecureCookie))
		d.Flash.Add(w, r, flash.Success("Logged in successfully!"))
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
	}
}

// EndSession forgets a session everywhere and clears the cookie. Used by
// logout and whenever the backend rejects the stored token.
func EndSession(w http.ResponseWriter, r *http.Request, d Deps, sessionID string) {
	if sessionID != "" {
		d.SessionCache.Delete(sessionID)
		if err := DeleteSessionByToken(r.Context(), d.DB, sessionID); err != nil {
			slog.Error("delete session failed", slog.Any("err", err))
		}
	}
	http.SetCookie(w, sessioncookie.SessionCookie("", -1, d.SecureCookie))
}
