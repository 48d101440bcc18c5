package dashboard

import (
	"context"
	"html/template"

	"portfolio/frontend/shared/nav"
	"portfolio/infrastructure/flash"
	"portfolio/models"
)

type AdminAPI interface {
	AdminListProjects(ctx context.Context, page, size int) (models.Page[models.Project], error)
	ListCertificates(ctx context.Context, page, size int) (models.Page[models.Certificate], error)
	ListMessages(ctx context.Context) (models.Page[models.ContactMessage], error)
	UnreadCount(ctx context.Context) (int64, error)
}

type ProjectRow struct {
	Project   models.Project
	Kind      string
	NextState bool
}

type ProjectsTab struct {
	Rows    []ProjectRow
	Error   bool
	Page    int
	PrevURL string
	NextURL string
	AddForm template.HTML
}

type CertificatesTab struct {
	Rows    []models.Certificate
	Error   bool
	PrevURL string
	NextURL string
	AddForm template.HTML
}

type MessagesTab struct {
	Rows   []models.ContactMessage
	Unread int64
	Error  bool
}

type ActivityRow struct {
	When       string
	Username   string
	Action     string
	EntityType string
	EntityID   string
}

type PageData struct {
	Nav          nav.TopNavData
	Tab          string
	Toasts       []flash.Toast
	Projects     ProjectsTab
	Certificates CertificatesTab
	Messages     MessagesTab
	Activity     []ActivityRow
}
