package projects

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/infrastructure/argon"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
	"portfolio/infrastructure/sqlite"
	"portfolio/models"
)

type fakeAPI struct {
	pages     []models.Page[models.Project]
	listCalls int
	created   []backend.ProjectInput
	updated   map[string]backend.ProjectInput
	deleted   []string
	published map[string]bool
	err       error
}

func (f *fakeAPI) AdminListProjects(_ context.Context, page, _ int) (models.Page[models.Project], error) {
	f.listCalls++
	if f.err != nil {
		return models.Page[models.Project]{}, f.err
	}
	if page >= len(f.pages) {
		return models.Page[models.Project]{Content: []models.Project{}}, nil
	}
	return f.pages[page], nil
}

func (f *fakeAPI) CreateProject(_ context.Context, in backend.ProjectInput) (models.Project, error) {
	if f.err != nil {
		return models.Project{}, f.err
	}
	f.created = append(f.created, in)
	return models.Project{ID: "42", Title: in.Title}, nil
}

func (f *fakeAPI) UpdateProject(_ context.Context, id string, in backend.ProjectInput) (models.Project, error) {
	if f.err != nil {
		return models.Project{}, f.err
	}
	if f.updated == nil {
		f.updated = map[string]backend.ProjectInput{}
	}
	f.updated[id] = in
	return models.Project{ID: models.ID(id), Title: in.Title}, nil
}

func (f *fakeAPI) DeleteProject(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) SetProjectPublished(_ context.Context, id string, published bool) error {
	if f.err != nil {
		return f.err
	}
	if f.published == nil {
		f.published = map[string]bool{}
	}
	f.published[id] = published
	return nil
}

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "projects-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func newRouter(api AdminAPI, db *sqlite.DB) http.Handler {
	return newFlashRouter(api, db, nil)
}

func newFlashRouter(api AdminAPI, db *sqlite.DB, flashes *flash.Store) http.Handler {
	auditSvc := audit.NewService(db)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := sessioncontext.NewContextWithSession(req.Context(), models.Session{ID: "s1", Username: "admin", Token: "t"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/admin/projects", CreateProjectCommandHandler(api, auditSvc, flashes))
	r.Get("/admin/projects/{id}/edit", EditProjectPageQueryHandler(api, flashes))
	r.Get("/admin/projects/{id}/activity", ProjectLogsPageQueryHandler(db, flashes))
	r.Post("/admin/projects/{id}", UpdateProjectCommandHandler(api, auditSvc, flashes))
	r.Post("/admin/projects/{id}/delete", DeleteProjectCommandHandler(api, auditSvc, flashes))
	r.Post("/admin/projects/{id}/publish", PublishProjectCommandHandler(api, auditSvc, flashes))
	return r
}

func postForm(h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"title":        {"Inventory API"},
		"overview":     {"Warehouse stock service"},
		"description":  {"Tracks **stock** levels."},
		"technologies": {"Go, SQLite, , chi"},
		"startDate":    {"2024-03-01"},
		"isTeamProj":   {"true"},
	}
}

func TestCreateProjectSendsParsedInputAndAudits(t *testing.T) {
	db := openTestDB(t)
	api := &fakeAPI{}
	rec := postForm(newRouter(api, db), "/admin/projects", validForm())

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != listBack {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if len(api.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(api.created))
	}
	in := api.created[0]
	if strings.Join(in.Technologies, "|") != "Go|SQLite|chi" {
		t.Fatalf("unexpected technologies %v", in.Technologies)
	}
	if !in.IsTeamProj {
		t.Fatalf("expected team project")
	}

	logs, err := audit.NewService(db).Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != audit.ActionCreate || logs[0].EntityID != "42" || logs[0].Username != "admin" {
		t.Fatalf("unexpected audit rows %+v", logs)
	}
}

func TestCreateProjectValidationSkipsBackend(t *testing.T) {
	db := openTestDB(t)
	api := &fakeAPI{}
	values := validForm()
	values.Set("technologies", " , ")
	rec := postForm(newRouter(api, db), "/admin/projects", values)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != listBack {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if len(api.created) != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestFindProjectWalksPages(t *testing.T) {
	api := &fakeAPI{pages: []models.Page[models.Project]{
		{Content: []models.Project{{ID: "1"}}, Number: 0, TotalPages: 2},
		{Content: []models.Project{{ID: "2", Title: "Second"}}, Number: 1, TotalPages: 2},
	}}
	p, err := FindProject(context.Background(), api, "2")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p.Title != "Second" || api.listCalls != 2 {
		t.Fatalf("unexpected result %+v after %d calls", p, api.listCalls)
	}

	if _, err := FindProject(context.Background(), api, "9"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEditPagePrefillsForm(t *testing.T) {
	db := openTestDB(t)
	api := &fakeAPI{pages: []models.Page[models.Project]{{
		Content: []models.Project{{
			ID:           "7",
			Title:        "Portfolio",
			Overview:     "Personal site",
			Technologies: []string{"Go", "templ"},
			IsTeamProj:   true,
		}},
		TotalPages: 1,
	}}}
	rec := httptest.NewRecorder()
	newRouter(api, db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects/7/edit", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`action="/admin/projects/7"`, `value="Portfolio"`, `value="Go, templ"`, "checked", "Update Project"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in edit page", want)
		}
	}
}

func TestEditPageUnknownProjectRedirects(t *testing.T) {
	db := openTestDB(t)
	api := &fakeAPI{pages: []models.Page[models.Project]{{Content: []models.Project{}, TotalPages: 1}}}
	rec := httptest.NewRecorder()
	newRouter(api, db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects/404/edit", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != listBack {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestUpdateUnauthorizedRedirectsToLogin(t *testing.T) {
	db := openTestDB(t)
	api := &fakeAPI{err: &backend.StatusError{Op: "update project", StatusCode: http.StatusForbidden}}
	rec := postForm(newRouter(api, db), "/admin/projects/7", validForm())
	if !strings.HasPrefix(rec.Header().Get("Location"), "/admin/login") {
		t.Fatalf("expected login redirect, got %q", rec.Header().Get("Location"))
	}
}

func TestUpdateProjectRecordsBeforeAndAfter(t *testing.T) {
	db := openTestDB(t)
	api := &fakeAPI{pages: []models.Page[models.Project]{{Content: []models.Project{{ID: "7", Title: "Old"}}, TotalPages: 1}}}
	rec := postForm(newRouter(api, db), "/admin/projects/7", validForm())
	if rec.Header().Get("Location") != listBack {
		t.Fatalf("unexpected redirect %q", rec.Header().Get("Location"))
	}
	if api.updated["7"].Title != "Inventory API" {
		t.Fatalf("expected update to be sent, got %+v", api.updated)
	}

	data, err := LoadProjectLogsPageData(context.Background(), db, "7")
	if err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if data.ProjectTitle != "Inventory API" || len(data.Rows) != 1 {
		t.Fatalf("unexpected logs %+v", data)
	}
	if !strings.Contains(data.Rows[0].BeforeJSON, `"Old"`) {
		t.Fatalf("expected before payload, got %q", data.Rows[0].BeforeJSON)
	}
}

func TestDeleteAndPublish(t *testing.T) {
	db := openTestDB(t)
	api := &fakeAPI{}
	h := newRouter(api, db)

	if rec := postForm(h, "/admin/projects/3/publish", url.Values{"state": {"true"}}); rec.Header().Get("Location") != listBack {
		t.Fatalf("unexpected publish redirect %q", rec.Header().Get("Location"))
	}
	if !api.published["3"] {
		t.Fatalf("expected project 3 published")
	}
	if rec := postForm(h, "/admin/projects/3/publish", url.Values{"state": {"false"}}); rec.Code != http.StatusSeeOther {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if api.published["3"] {
		t.Fatalf("expected project 3 unpublished")
	}
	if rec := postForm(h, "/admin/projects/3/delete", url.Values{}); rec.Header().Get("Location") != listBack {
		t.Fatalf("unexpected delete redirect %q", rec.Header().Get("Location"))
	}
	if len(api.deleted) != 1 || api.deleted[0] != "3" {
		t.Fatalf("unexpected deletes %v", api.deleted)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects/3/activity", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.Count(rec.Body.String(), "<tr><td>"); got != 3 {
		t.Fatalf("expected 3 activity rows, got %d", got)
	}
}

func newTestFlashes(t *testing.T) *flash.Store {
	t.Helper()
	flashes, err := flash.NewStore("flash-secret", false, &argon.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32})
	if err != nil {
		t.Fatalf("new flash store: %v", err)
	}
	return flashes
}

func lastCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a flash cookie")
	}
	return cookies[len(cookies)-1]
}

func TestCreateProjectFailureKeepsDraft(t *testing.T) {
	db := openTestDB(t)
	flashes := newTestFlashes(t)
	values := validForm()
	values.Set("technologies", " , ")
	rec := postForm(newFlashRouter(&fakeAPI{}, db, flashes), "/admin/projects", values)

	req := httptest.NewRequest(http.MethodGet, listBack, nil)
	req.AddCookie(lastCookie(t, rec))
	form := NewForm().WithDraft(flashes.PopDraft(httptest.NewRecorder(), req, NewDraft))
	if form.Title != "Inventory API" || form.Technologies != " , " || form.StartDate != "2024-03-01" || !form.IsTeamProj {
		t.Fatalf("unexpected prefilled form %+v", form)
	}
	if form.Action != "/admin/projects" {
		t.Fatalf("draft must not change the form action, got %q", form.Action)
	}
}

func TestEditPageShowsDraftAfterFailedUpdate(t *testing.T) {
	db := openTestDB(t)
	flashes := newTestFlashes(t)
	api := &fakeAPI{
		pages: []models.Page[models.Project]{{Content: []models.Project{{ID: "7", Title: "Portfolio", IsTeamProj: true}}, TotalPages: 1}},
		err:   &backend.StatusError{Op: "update project", StatusCode: http.StatusBadGateway},
	}
	h := newFlashRouter(api, db, flashes)

	values := validForm()
	values.Set("title", "Retitled")
	values.Del("isTeamProj")
	rec := postForm(h, "/admin/projects/7", values)
	if rec.Header().Get("Location") != "/admin/projects/7/edit" {
		t.Fatalf("unexpected redirect %q", rec.Header().Get("Location"))
	}

	api.err = nil
	req := httptest.NewRequest(http.MethodGet, "/admin/projects/7/edit", nil)
	req.AddCookie(lastCookie(t, rec))
	page := httptest.NewRecorder()
	h.ServeHTTP(page, req)
	body := page.Body.String()
	if !strings.Contains(body, `value="Retitled"`) || strings.Contains(body, `value="Portfolio"`) {
		t.Fatalf("expected the submitted title to win over the stored one")
	}
	if strings.Contains(body, `value="true" checked`) {
		t.Fatalf("expected the cleared team checkbox to stay cleared")
	}

	// A second visit shows the stored project again.
	again := httptest.NewRequest(http.MethodGet, "/admin/projects/7/edit", nil)
	again.AddCookie(lastCookie(t, page))
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, again)
	if !strings.Contains(rec2.Body.String(), `value="Portfolio"`) {
		t.Fatalf("expected the draft to be consumed")
	}
}
