package login

import (
	"log/slog"
	"net/http"

	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/infrastructure/audit"
	sessioncookie "portfolio/infrastructure/session"
)

// LogoutHandler removes session state and clears cookie.
func LogoutHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessioncookie.CookieName)
		if err == nil && cookie.Value != "" {
			if s, ok := sessioncontext.GetSessionFromContext(r.Context()); ok && d.Audit != nil {
				if err := d.Audit.Record(r.Context(), s.Username, audit.ActionLogout, audit.EntitySession, "", nil, nil); err != nil {
					slog.Error("write logout audit failed", slog.Any("err", err))
				}
			}
			EndSession(w, r, d, cookie.Value)
		} else {
			http.SetCookie(w, sessioncookie.SessionCookie("", -1, d.SecureCookie))
		}
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
	}
}
