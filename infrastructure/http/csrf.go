package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"portfolio/frontend/shared/form"
	"portfolio/infrastructure/flash"
)

const csrfCookieName = "X-CSRF-Token"

// CSRFMiddleware checks the double submit token on unsafe requests. Forms
// posted without scripts carry no token; those pass when Origin or Referer
// names this host. The body is parsed here, capped, and any spooled file
// parts are removed once the handler chain returns.
func (s *Server) CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ensureCSRFToken(w, r, s.Settings.SecureCookie)
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, form.MaxUploadBytes)
		if err := r.ParseMultipartForm(form.MaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				s.rejectTooLarge(w, r)
				return
			}
		}
		// Handlers get shallow copies of r, so net/http never cleans this form.
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		provided := strings.TrimSpace(r.Header.Get("X-CSRF-Token"))
		if provided == "" {
			provided = strings.TrimSpace(r.PostFormValue("_csrf"))
		}

		if provided == "" {
			if !sameOrigin(r) {
				http.Error(w, "invalid csrf token", http.StatusForbidden)
				return
			}
		} else if subtle.ConstantTimeCompare([]byte(token), []byte(provided)) != 1 {
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rejectTooLarge sends same-site form posts back where they came from with a
// toast; anything else gets a bare 413.
func (s *Server) rejectTooLarge(w http.ResponseWriter, r *http.Request) {
	back, ok := refererPath(r)
	if !ok {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	msg := "Upload is too large. Please choose a smaller file."
	if r.URL.Path == "/admin/resume" {
		msg = "Resume must be 10 MB or smaller."
	}
	s.Flash.Add(w, r, flash.Error(msg))
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// refererPath returns the local path of a same-host Referer.
func refererPath(r *http.Request) (string, bool) {
	u, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || u.Host == "" || !strings.EqualFold(u.Host, r.Host) {
		return "", false
	}
	return u.RequestURI(), true
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

func ensureCSRFToken(w http.ResponseWriter, r *http.Request, secure bool) string {
	if c, err := r.Cookie(csrfCookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		return c.Value
	}
	token := randomToken(32)
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

func randomToken(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
