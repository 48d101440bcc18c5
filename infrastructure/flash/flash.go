package flash

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"portfolio/infrastructure/argon"
)

const sessionName = "portfolio-flash"

const (
	KindSuccess = "success"
	KindError   = "error"
)

// Toast is a one-shot notification shown after a redirect.
type Toast struct {
	Kind    string
	Title   string
	Message string
}

func Success(message string) Toast {
	return Toast{Kind: KindSuccess, Title: "Success", Message: message}
}

func Error(message string) Toast {
	return Toast{Kind: KindError, Title: "Error", Message: message}
}

// Draft is what a failed form submitted, so the form can be shown again.
type Draft map[string]string

func init() {
	gob.Register(Toast{})
	gob.Register(Draft{})
}

func draftKey(form string) string { return "draft:" + form }

// Store keeps toasts in a signed, encrypted cookie.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore derives cookie keys from secret. Keys are scoped by salt so the
// same secret can also seal tokens.
func NewStore(secret string, secure bool, p *argon.Params) (*Store, error) {
	hashKey, err := argon.DeriveKey(secret, "portfolio/flash-hash/v1", p)
	if err != nil {
		return nil, err
	}
	blockKey, err := argon.DeriveKey(secret, "portfolio/flash-block/v1", p)
	if err != nil {
		return nil, err
	}
	cs := sessions.NewCookieStore(hashKey, blockKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}, nil
}

// Add queues a toast for the next page render. Failures are logged only;
// a lost toast never blocks the redirect.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, t Toast) {
	if s == nil {
		return
	}
	sess, _ := s.cookies.Get(r, sessionName)
	sess.AddFlash(t)
	if err := sess.Save(r, w); err != nil {
		slog.Error("flash: save failed", slog.Any("err", err))
	}
}

// Pop returns and clears queued toasts. Call before writing the body.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Toast {
	if s == nil {
		return nil
	}
	sess, err := s.cookies.Get(r, sessionName)
	if err != nil && sess == nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		slog.Error("flash: clear failed", slog.Any("err", err))
	}
	out := make([]Toast, 0, len(raw))
	for _, v := range raw {
		if t, ok := v.(Toast); ok {
			out = append(out, t)
		}
	}
	return out
}

// SaveDraft keeps the submitted values of form for the next render. Leave
// passwords and file fields out.
func (s *Store) SaveDraft(w http.ResponseWriter, r *http.Request, form string, values Draft) {
	if s == nil || len(values) == 0 {
		return
	}
	sess, _ := s.cookies.Get(r, sessionName)
	sess.Values[draftKey(form)] = values
	if err := sess.Save(r, w); err != nil {
		slog.Error("flash: save draft failed", slog.String("form", form), slog.Any("err", err))
	}
}

// PopDraft returns and clears the draft saved for form, or nil.
func (s *Store) PopDraft(w http.ResponseWriter, r *http.Request, form string) Draft {
	if s == nil {
		return nil
	}
	sess, err := s.cookies.Get(r, sessionName)
	if err != nil && sess == nil {
		return nil
	}
	d, ok := sess.Values[draftKey(form)].(Draft)
	if !ok {
		return nil
	}
	delete(sess.Values, draftKey(form))
	if err := sess.Save(r, w); err != nil {
		slog.Error("flash: clear draft failed", slog.String("form", form), slog.Any("err", err))
	}
	return d
}
