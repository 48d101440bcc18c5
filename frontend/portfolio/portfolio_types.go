package portfolio

import (
	"context"
	"html/template"

	"portfolio/frontend/shared/html"
	"portfolio/infrastructure/flash"
	"portfolio/models"
)

const (
	FilterAll  = "all"
	FilterTeam = models.ProjectTypeTeam
	FilterSolo = models.ProjectTypeSolo
)

// PublicAPI is the part of the backend client the public pages read from.
type PublicAPI interface {
	ListProjects(ctx context.Context, page, size int) (models.Page[models.Project], error)
	ListProjectsByType(ctx context.Context, kind string, page, size int) (models.Page[models.Project], error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	ProjectTags(ctx context.Context) ([]string, error)
	ListCertificates(ctx context.Context, page, size int) (models.Page[models.Certificate], error)
}

// Profile is the site owner as configured.
type Profile struct {
	html.Owner
	Roles    []string
	Tagline  string
	Location string
}

type Settings struct {
	Profile  Profile
	PageSize int
}

type Specialization struct {
	Title string
}

type Skill struct {
	Name     string
	Category string
}

var Specializations = []Specialization{
	{Title: "API Development & Integration"},
	{Title: "Third-party Service Integration"},
	{Title: "Scalable Backend Systems"},
	{Title: "Database Design & Optimization"},
}

var Skills = []Skill{
	{Name: "Go", Category: "Languages"},
	{Name: "Java", Category: "Languages"},
	{Name: "Spring Boot", Category: "Frameworks"},
	{Name: "MySQL", Category: "Databases"},
	{Name: "PostgreSQL", Category: "Databases"},
	{Name: "Redis", Category: "Caching"},
	{Name: "Docker", Category: "DevOps"},
	{Name: "Kubernetes", Category: "DevOps"},
	{Name: "AWS", Category: "Cloud"},
}

type FilterLink struct {
	Label  string
	URL    string
	Active bool
}

type TagChip struct {
	Name   string
	URL    string
	Active bool
}

type ProjectCard struct {
	Project     models.Project
	Kind        string
	Description template.HTML
	DetailURL   string
}

type ProjectsSection struct {
	Filter    string
	Tag       string
	Filters   []FilterLink
	Tags      []TagChip
	Cards     []ProjectCard
	Page      int
	PrevURL   string
	NextURL   string
	Error     bool
	EmptyText string
}

type CertificateCard struct {
	Certificate models.Certificate
	Description template.HTML
	Long        bool
	Expanded    bool
	ToggleURL   string
	ToggleLabel string
}

type CertificatesSection struct {
	Cards   []CertificateCard
	PrevURL string
	NextURL string
	Error   bool
}

type ContactForm struct {
	Name    string
	Email   string
	Message string
}

type HomeData struct {
	Profile         Profile
	Specializations []Specialization
	Skills          []Skill
	Projects        ProjectsSection
	Certificates    CertificatesSection
	Contact         ContactForm
	Toasts          []flash.Toast
}

type DetailData struct {
	Profile Profile
	Card    ProjectCard
	Toasts  []flash.Toast
}
