package contact

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
	"portfolio/models"
)

const backTo = "/#contact"

// DraftName keys the contact form values kept after a failed send.
const DraftName = "contact"

type Submitter interface {
	SubmitContact(ctx context.Context, msg models.ContactRequest) error
}

// SubmitContactCommandHandler validates the public contact form and sends
// it to the backend in one request.
func SubmitContactCommandHandler(api Submitter, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			flashes.Add(w, r, flash.Error("Please fill in all fields."))
			http.Redirect(w, r, backTo, http.StatusSeeOther)
			return
		}
		msg := models.ContactRequest{
			Name:    strings.TrimSpace(r.FormValue("name")),
			Email:   strings.TrimSpace(r.FormValue("email")),
			Message: strings.TrimSpace(r.FormValue("message")),
		}
		draft := flash.Draft{"name": msg.Name, "email": msg.Email, "message": msg.Message}
		if err := backend.ValidateContact(msg); err != nil {
			flashes.SaveDraft(w, r, DraftName, draft)
			text := "Please fill in all fields."
			if errors.Is(err, backend.ErrEmailInvalid) {
				text = "Please enter a valid email address."
			}
			flashes.Add(w, r, flash.Error(text))
			http.Redirect(w, r, backTo, http.StatusSeeOther)
			return
		}

		if err := api.SubmitContact(r.Context(), msg); err != nil {
			slog.Error("submit contact form failed", slog.Any("err", err))
			flashes.SaveDraft(w, r, DraftName, draft)
			flashes.Add(w, r, flash.Error("Failed to send message. Please try again."))
			http.Redirect(w, r, backTo, http.StatusSeeOther)
			return
		}
		slog.Info("contact message sent", slog.String("email", msg.Email))
		flashes.Add(w, r, flash.Success("Your message has been sent successfully."))
		http.Redirect(w, r, backTo, http.StatusSeeOther)
	}
}
