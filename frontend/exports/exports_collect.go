package exports

import (
	"context"
	"fmt"
	"time"

	"portfolio/frontend/portfolio"
	"portfolio/models"
)

const (
	collectPageSize = 50
	collectMaxPages = 20
)

// Collect reads every published project and certificate page.
func Collect(ctx context.Context, src Source, profile portfolio.Profile, siteURL string, now time.Time) (Portfolio, error) {
	out := Portfolio{
		Profile:      profile,
		SiteURL:      siteURL,
		Projects:     make([]models.Project, 0),
		Certificates: make([]models.Certificate, 0),
		GeneratedAt:  now,
	}

	for page := 0; page < collectMaxPages; page++ {
		list, err := src.ListProjects(ctx, page, collectPageSize)
		if err != nil {
			return Portfolio{}, fmt.Errorf("collect projects page %d: %w", page, err)
		}
		out.Projects = append(out.Projects, list.Content...)
		if !list.HasNext() {
			break
		}
	}
	for page := 0; page < collectMaxPages; page++ {
		list, err := src.ListCertificates(ctx, page, collectPageSize)
		if err != nil {
			return Portfolio{}, fmt.Errorf("collect certificates page %d: %w", page, err)
		}
		out.Certificates = append(out.Certificates, list.Content...)
		if !list.HasNext() {
			break
		}
	}
	return out, nil
}
