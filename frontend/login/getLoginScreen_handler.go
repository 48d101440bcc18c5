package login

import (
	"net/http"

	"portfolio/infrastructure/flash"
)

// GetLoginScreenHandler renders the login screen.
func GetLoginScreenHandler(flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ScreenData{
			Error:  r.URL.Query().Get("error"),
			Toasts: flashes.Pop(w, r),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := GetLoginScreen(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render login screen", http.StatusInternalServerError)
			return
		}
	}
}
