package login

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
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

var testParams = &argon.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32}

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (string, error) {
	f.calls++
	return f.token, f.err
}

func newDeps(t *testing.T, auth Authenticator) Deps {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "login.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sealer, err := argon.NewSealer("test-secret", testParams)
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	flashes, err := flash.NewStore("test-secret", false, testParams)
	if err != nil {
		t.Fatalf("flash: %v", err)
	}
	return Deps{
		DB:           db,
		SessionCache: cache.NewSessionCache(),
		Sealer:       sealer,
		Auth:         auth,
		Audit:        audit.NewService(db),
		Flash:        flashes,
	}
}

func postLogin(h http.Handler, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, LoginPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessioncookie.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginSuccessStoresSealedToken(t *testing.T) {
	auth := &fakeAuth{token: "bearer-xyz"}
	d := newDeps(t, auth)

	rec := postLogin(CreateLoginHandler(d), "admin", "pw")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != DashboardPath {
		t.Fatalf("expected redirect to dashboard, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	c := sessionCookieFrom(rec)
	if c == nil || c.Value == "" || !c.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", c)
	}
	if strings.Contains(c.Value, "bearer-xyz") {
		t.Fatalf("cookie must not carry the bearer token")
	}

	var stored models.Session
	if err := d.DB.R.NewSelect().Model(&stored).Where("s.id = ?", c.Value).Scan(context.Background()); err != nil {
		t.Fatalf("load raw session: %v", err)
	}
	if stored.SealedToken == "" || strings.Contains(stored.SealedToken, "bearer-xyz") {
		t.Fatalf("token must be sealed at rest, got %q", stored.SealedToken)
	}

	loaded, err := LoadSessionByToken(context.Background(), d.DB, d.Sealer, c.Value)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded.Token != "bearer-xyz" || loaded.Username != "admin" {
		t.Fatalf("unexpected session: %+v", loaded)
	}
	if _, ok := d.SessionCache.Find(c.Value); !ok {
		t.Fatalf("expected session in cache")
	}
}

func TestLoginMissingFieldsIssuesNoBackendCall(t *testing.T) {
	auth := &fakeAuth{token: "x"}
	d := newDeps(t, auth)
	rec := postLogin(CreateLoginHandler(d), "admin", "")
	if !strings.HasPrefix(rec.Header().Get("Location"), LoginPath+"?error=") {
		t.Fatalf("expected error redirect, got %q", rec.Header().Get("Location"))
	}
	if auth.calls != 0 {
		t.Fatalf("expected no backend call, got %d", auth.calls)
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	auth := &fakeAuth{err: &backend.StatusError{Op: "login", StatusCode: http.StatusUnauthorized}}
	d := newDeps(t, auth)
	rec := postLogin(CreateLoginHandler(d), "admin", "bad")
	loc, _ := url.Parse(rec.Header().Get("Location"))
	if loc.Query().Get("error") != "Invalid username or password." {
		t.Fatalf("unexpected redirect %q", rec.Header().Get("Location"))
	}
	if sessionCookieFrom(rec) != nil {
		t.Fatalf("no session cookie expected")
	}
}

func TestLoginBackendDown(t *testing.T) {
	auth := &fakeAuth{err: errors.New("connection refused")}
	d := newDeps(t, auth)
	rec := postLogin(CreateLoginHandler(d), "admin", "pw")
	loc, _ := url.Parse(rec.Header().Get("Location"))
	if loc.Query().Get("error") != "Login failed. Please try again." {
		t.Fatalf("unexpected redirect %q", rec.Header().Get("Location"))
	}
}

func TestExpiredSessionIsDeletedOnLoad(t *testing.T) {
	d := newDeps(t, &fakeAuth{})
	ctx := context.Background()
	s := models.Session{ID: "old", Username: "admin", Token: "t", ExpiresAt: time.Now().Add(-time.Minute).UTC()}
	if err := persistSession(ctx, d.DB, d.Sealer, s); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if _, err := LoadSessionByToken(ctx, d.DB, d.Sealer, "old"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	n, err := d.DB.R.NewSelect().Model((*models.Session)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected expired session removed, got %d rows", n)
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	d := newDeps(t, &fakeAuth{})
	ctx := context.Background()
	now := time.Now().UTC()
	for id, exp := range map[string]time.Time{"a": now.Add(-time.Hour), "b": now.Add(time.Hour)} {
		if err := persistSession(ctx, d.DB, d.Sealer, models.Session{ID: id, Username: "admin", Token: "t", ExpiresAt: exp}); err != nil {
			t.Fatalf("persist %s: %v", id, err)
		}
	}
	n, err := PurgeExpiredSessions(ctx, d.DB, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged, got %d", n)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	d := newDeps(t, &fakeAuth{token: "tok"})
	login := postLogin(CreateLoginHandler(d), "admin", "pw")
	c := sessionCookieFrom(login)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(c)
	rec := httptest.NewRecorder()
	LogoutHandler(d).ServeHTTP(rec, req)

	if rec.Header().Get("Location") != LoginPath {
		t.Fatalf("expected redirect to login, got %q", rec.Header().Get("Location"))
	}
	cleared := sessionCookieFrom(rec)
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cleared)
	}
	if _, ok := d.SessionCache.Find(c.Value); ok {
		t.Fatalf("expected cache eviction")
	}
	if _, err := LoadSessionByToken(context.Background(), d.DB, d.Sealer, c.Value); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected session row deleted, got %v", err)
	}
}

func TestLoginScreenShowsError(t *testing.T) {
	d := newDeps(t, &fakeAuth{})
	req := httptest.NewRequest(http.MethodGet, LoginPath+"?error="+url.QueryEscape("Invalid username or password."), nil)
	rec := httptest.NewRecorder()
	GetLoginScreenHandler(d.Flash).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password.") {
		t.Fatalf("expected error message in body")
	}
}
