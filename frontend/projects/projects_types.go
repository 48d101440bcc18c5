package projects

import (
	"context"
	"net/http"
	"strings"

	"portfolio/frontend/shared/nav"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
	"portfolio/models"
)

type AdminAPI interface {
	AdminListProjects(ctx context.Context, page, size int) (models.Page[models.Project], error)
	CreateProject(ctx context.Context, in backend.ProjectInput) (models.Project, error)
	UpdateProject(ctx context.Context, id string, in backend.ProjectInput) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	SetProjectPublished(ctx context.Context, id string, published bool) error
}

// FormData fills the add and edit project forms.
type FormData struct {
	Action       string
	Submit       string
	Title        string
	Overview     string
	Description  string
	Technologies string
	StartDate    string
	EndDate      string
	GitHubURL    string
	LiveURL      string
	IsTeamProj   bool
	ImageURL     string
}

// NewForm is the empty add form.
func NewForm() FormData {
	return FormData{Action: "/admin/projects", Submit: "Add Project"}
}

// EditForm prefills the form from an existing project.
func EditForm(p models.Project) FormData {
	return FormData{
		Action:       "/admin/projects/" + p.ID.String(),
		Submit:       "Update Project",
		Title:        p.Title,
		Overview:     p.Overview,
		Description:  p.Description,
		Technologies: strings.Join(p.Technologies, ", "),
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		GitHubURL:    p.GitHubURL,
		LiveURL:      p.LiveURL,
		IsTeamProj:   p.Kind() == models.ProjectTypeTeam,
		ImageURL:     p.ImageURL,
	}
}

// NewDraft keys the add form values kept after a failed create.
const NewDraft = "project-new"

// EditDraft keys the edit form values kept after a failed update of id.
func EditDraft(id string) string { return "project-" + id }

var draftFields = []string{"title", "overview", "description", "technologies", "startDate", "endDate", "githubUrl", "liveUrl", "isTeamProj"}

func draftFromRequest(r *http.Request) flash.Draft {
	d := make(flash.Draft, len(draftFields))
	for _, name := range draftFields {
		d[name] = r.FormValue(name)
	}
	return d
}

// WithDraft replaces the form values with a failed submit's, keeping the
// action and current image.
func (f FormData) WithDraft(d flash.Draft) FormData {
	if d == nil {
		return f
	}
	f.Title = d["title"]
	f.Overview = d["overview"]
	f.Description = d["description"]
	f.Technologies = d["technologies"]
	f.StartDate = d["startDate"]
	f.EndDate = d["endDate"]
	f.GitHubURL = d["githubUrl"]
	f.LiveURL = d["liveUrl"]
	f.IsTeamProj = d["isTeamProj"] != ""
	return f
}

type EditPageData struct {
	Nav       nav.TopNavData
	ProjectID string
	Form      FormData
	Toasts    []flash.Toast
}

type ProjectLogsPageData struct {
	Nav          nav.TopNavData
	ProjectID    string
	ProjectTitle string
	Toasts       []flash.Toast
	Rows         []ProjectLogRow
}

type ProjectLogRow struct {
	CreatedAtUK string
	Actor       string
	Action      string
	EntityType  string
	EntityID    string
	BeforeJSON  string
	AfterJSON   string
}
