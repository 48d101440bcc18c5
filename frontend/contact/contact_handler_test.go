package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"portfolio/infrastructure/argon"
	"portfolio/infrastructure/flash"
	"portfolio/models"
)

type fakeSubmitter struct {
	got []models.ContactRequest
	err error
}

func (f *fakeSubmitter) SubmitContact(_ context.Context, msg models.ContactRequest) error {
	f.got = append(f.got, msg)
	return f.err
}

func post(h http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubmitSendsOneRequest(t *testing.T) {
	api := &fakeSubmitter{}
	rec := post(SubmitContactCommandHandler(api, nil), url.Values{
		"name": {" Ann "}, "email": {"ann@example.com"}, "message": {"Hello there"},
	})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/#contact" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if len(api.got) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(api.got))
	}
	want := models.ContactRequest{Name: "Ann", Email: "ann@example.com", Message: "Hello there"}
	if api.got[0] != want {
		t.Fatalf("unexpected payload %+v", api.got[0])
	}
}

func TestSubmitMissingFieldIssuesNoRequest(t *testing.T) {
	for _, form := range []url.Values{
		{"email": {"a@b.c"}, "message": {"hi"}},
		{"name": {"Ann"}, "message": {"hi"}},
		{"name": {"Ann"}, "email": {"nope"}, "message": {"hi"}},
		{"name": {"Ann"}, "email": {"a@b.c"}, "message": {"   "}},
	} {
		api := &fakeSubmitter{}
		rec := post(SubmitContactCommandHandler(api, nil), form)
		if len(api.got) != 0 {
			t.Fatalf("expected no request for %v", form)
		}
		if rec.Header().Get("Location") != "/#contact" {
			t.Fatalf("expected redirect back to contact")
		}
	}
}

func TestSubmitBackendFailureRedirects(t *testing.T) {
	api := &fakeSubmitter{err: errors.New("503")}
	rec := post(SubmitContactCommandHandler(api, nil), url.Values{
		"name": {"Ann"}, "email": {"ann@example.com"}, "message": {"Hello"},
	})
	if rec.Code != http.StatusSeeOther || len(api.got) != 1 {
		t.Fatalf("expected single attempt and redirect, got %d calls", len(api.got))
	}
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	flashes, err := flash.NewStore("flash-secret", false, &argon.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for name, tc := range map[string]struct {
		api  *fakeSubmitter
		form url.Values
	}{
		"invalid email":   {&fakeSubmitter{}, url.Values{"name": {"Ann"}, "email": {"nope"}, "message": {"Hello there"}}},
		"backend failure": {&fakeSubmitter{err: errors.New("503")}, url.Values{"name": {"Ann"}, "email": {"ann@example.com"}, "message": {"Hello there"}}},
	} {
		t.Run(name, func(t *testing.T) {
			rec := post(SubmitContactCommandHandler(tc.api, flashes), tc.form)
			cookies := rec.Result().Cookies()
			if len(cookies) == 0 {
				t.Fatalf("expected flash cookie")
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(cookies[len(cookies)-1])
			d := flashes.PopDraft(httptest.NewRecorder(), req, DraftName)
			if d["name"] != "Ann" || d["email"] != tc.form.Get("email") || d["message"] != "Hello there" {
				t.Fatalf("unexpected draft %v", d)
			}
		})
	}
}

func TestSubmitSuccessKeepsNoDraft(t *testing.T) {
	flashes, err := flash.NewStore("flash-secret", false, &argon.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	rec := post(SubmitContactCommandHandler(&fakeSubmitter{}, flashes), url.Values{
		"name": {"Ann"}, "email": {"ann@example.com"}, "message": {"Hello"},
	})
	cookies := rec.Result().Cookies()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[len(cookies)-1])
	if d := flashes.PopDraft(httptest.NewRecorder(), req, DraftName); d != nil {
		t.Fatalf("expected no draft after a sent message, got %v", d)
	}
}
