package respond

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
)

const sessionExpired = "Your session has expired. Please log in again."

// Unauthorized reports whether err means the stored credential is no
// longer accepted.
func Unauthorized(err error) bool {
	return errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, backend.ErrNoCredential)
}

// ToLogin ends the admin session and sends the browser to the login page.
func ToLogin(w http.ResponseWriter, r *http.Request) {
	sessioncontext.EndSession(w, r)
	http.Redirect(w, r, "/admin/login?error="+url.QueryEscape(sessionExpired), http.StatusSeeOther)
}

// Fail reports a failed admin action. Rejected credentials end the session;
// validation errors are shown as is; everything else collapses into msg.
func Fail(w http.ResponseWriter, r *http.Request, flashes *flash.Store, err error, msg, back string) {
	if Unauthorized(err) {
		ToLogin(w, r)
		return
	}
	if backend.IsValidation(err) {
		flashes.Add(w, r, flash.Error(capitalize(err.Error())+"."))
	} else {
		slog.Error(msg, slog.String("path", r.URL.Path), slog.Any("err", err))
		flashes.Add(w, r, flash.Error(msg))
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// Succeed flashes msg and redirects to back.
func Succeed(w http.ResponseWriter, r *http.Request, flashes *flash.Store, msg, back string) {
	flashes.Add(w, r, flash.Success(msg))
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
