package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/frontend/shared/form"
	"portfolio/frontend/shared/nav"
	"portfolio/frontend/shared/respond"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
	"portfolio/infrastructure/sqlite"
	"portfolio/models"
)

const (
	listBack   = "/admin?tab=projects"
	lookupSize = 50
	lookupMax  = 20
)

// ErrProjectNotFound is returned when no admin listing page holds the id.
var ErrProjectNotFound = errors.New("project not found")

func inputFromRequest(r *http.Request) (backend.ProjectInput, error) {
	image, err := form.File(r, "image")
	if err != nil {
		return backend.ProjectInput{}, err
	}
	return backend.ProjectInput{
		Title:        form.Text(r, "title"),
		Overview:     form.Text(r, "overview"),
		Description:  form.Text(r, "description"),
		Technologies: backend.ParseTechnologies(r.FormValue("technologies")),
		StartDate:    form.Text(r, "startDate"),
		EndDate:      form.Text(r, "endDate"),
		GitHubURL:    form.Text(r, "githubUrl"),
		LiveURL:      form.Text(r, "liveUrl"),
		IsTeamProj:   form.Checkbox(r, "isTeamProj"),
		Image:        image,
	}, nil
}

// FindProject walks the admin listing until it meets id. The backend has no
// admin read-by-id endpoint and drafts are not visible publicly.
func FindProject(ctx context.Context, api AdminAPI, id string) (models.Project, error) {
	for page := 0; page < lookupMax; page++ {
		list, err := api.AdminListProjects(ctx, page, lookupSize)
		if err != nil {
			return models.Project{}, err
		}
		for _, p := range list.Content {
			if p.ID.String() == id {
				return p, nil
			}
		}
		if !list.HasNext() {
			break
		}
	}
	return models.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

func record(ctx context.Context, auditSvc *audit.Service, action, id string, before, after any) {
	if auditSvc == nil {
		return
	}
	if err := auditSvc.Record(ctx, sessioncontext.Username(ctx), action, audit.EntityProject, id, before, after); err != nil {
		slog.Error("write project audit failed", slog.String("action", action), slog.String("id", id), slog.Any("err", err))
	}
}

func CreateProjectCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const failed = "Failed to add project. Please try again."
		if err := form.Parse(w, r); err != nil {
			respond.Fail(w, r, flashes, err, failed, listBack)
			return
		}
		fail := func(err error) {
			flashes.SaveDraft(w, r, NewDraft, draftFromRequest(r))
			respond.Fail(w, r, flashes, err, failed, listBack)
		}
		in, err := inputFromRequest(r)
		if err != nil {
			fail(err)
			return
		}
		if err := in.Validate(); err != nil {
			fail(err)
			return
		}

		created, err := api.CreateProject(r.Context(), in)
		if err != nil {
			fail(err)
			return
		}
		record(r.Context(), auditSvc, audit.ActionCreate, created.ID.String(), nil, created)
		respond.Succeed(w, r, flashes, "Project added successfully", listBack)
	}
}

func EditProjectPageQueryHandler(api AdminAPI, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		project, err := FindProject(r.Context(), api, id)
		if err != nil {
			if errors.Is(err, ErrProjectNotFound) {
				flashes.Add(w, r, flash.Error("Project not found."))
				http.Redirect(w, r, listBack, http.StatusSeeOther)
				return
			}
			respond.Fail(w, r, flashes, err, "Failed to load project. Please try again.", listBack)
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		data := EditPageData{
			Nav:       nav.BuildTopNavData(session, nav.TabProjects),
			ProjectID: id,
			Form:      EditForm(project).WithDraft(flashes.PopDraft(w, r, EditDraft(id))),
			Toasts:    flashes.Pop(w, r),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := EditProjectPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render project page", http.StatusInternalServerError)
			return
		}
	}
}

func UpdateProjectCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const failed = "Failed to update project. Please try again."
		id := chi.URLParam(r, "id")
		back := "/admin/projects/" + url.PathEscape(id) + "/edit"
		if err := form.Parse(w, r); err != nil {
			respond.Fail(w, r, flashes, err, failed, back)
			return
		}
		fail := func(err error) {
			flashes.SaveDraft(w, r, EditDraft(id), draftFromRequest(r))
			respond.Fail(w, r, flashes, err, failed, back)
		}
		in, err := inputFromRequest(r)
		if err != nil {
			fail(err)
			return
		}
		if err := in.Validate(); err != nil {
			fail(err)
			return
		}

		before, err := FindProject(r.Context(), api, id)
		if err != nil && !errors.Is(err, ErrProjectNotFound) {
			fail(err)
			return
		}
		updated, err := api.UpdateProject(r.Context(), id, in)
		if err != nil {
			fail(err)
			return
		}
		record(r.Context(), auditSvc, audit.ActionUpdate, id, before, updated)
		respond.Succeed(w, r, flashes, "Project updated successfully", listBack)
	}
}

func DeleteProjectCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := api.DeleteProject(r.Context(), id); err != nil {
			respond.Fail(w, r, flashes, err, "Failed to delete project. Please try again.", listBack)
			return
		}
		record(r.Context(), auditSvc, audit.ActionDelete, id, map[string]any{"id": id}, nil)
		respond.Succeed(w, r, flashes, "Project deleted successfully", listBack)
	}
}

// PublishProjectCommandHandler sets the published state from the "state"
// form field.
func PublishProjectCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := form.Parse(w, r); err != nil {
			respond.Fail(w, r, flashes, err, "Failed to update project. Please try again.", listBack)
			return
		}
		published := form.Checkbox(r, "state")
		if err := api.SetProjectPublished(r.Context(), id, published); err != nil {
			respond.Fail(w, r, flashes, err, "Failed to update project. Please try again.", listBack)
			return
		}
		record(r.Context(), auditSvc, audit.ActionPublish, id,
			map[string]any{"published": !published},
			map[string]any{"published": published},
		)
		msg := "Project unpublished successfully"
		if published {
			msg = "Project published successfully"
		}
		respond.Succeed(w, r, flashes, msg, listBack)
	}
}

func ProjectLogsPageQueryHandler(db *sqlite.DB, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := LoadProjectLogsPageData(r.Context(), db, chi.URLParam(r, "id"))
		if err != nil {
			slog.Error("load project logs failed", slog.Any("err", err))
			http.Error(w, "failed to load project logs", http.StatusInternalServerError)
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		data.Nav = nav.BuildTopNavData(session, nav.TabProjects)
		data.Toasts = flashes.Pop(w, r)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProjectLogsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render project logs page", http.StatusInternalServerError)
			return
		}
	}
}
