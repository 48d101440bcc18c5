package exports

import (
	"context"
	"time"

	"portfolio/frontend/portfolio"
	"portfolio/models"
)

// Source is the published content the export reads.
type Source interface {
	ListProjects(ctx context.Context, page, size int) (models.Page[models.Project], error)
	ListCertificates(ctx context.Context, page, size int) (models.Page[models.Certificate], error)
}

type MessageSource interface {
	ListMessages(ctx context.Context) (models.Page[models.ContactMessage], error)
}

// Portfolio is everything printed into the PDF.
type Portfolio struct {
	Profile      portfolio.Profile
	SiteURL      string
	Projects     []models.Project
	Certificates []models.Certificate
	GeneratedAt  time.Time
}
