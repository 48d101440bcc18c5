package http

import (
	"portfolio/frontend/background"
	"portfolio/frontend/certificates"
	"portfolio/frontend/contact"
	"portfolio/frontend/dashboard"
	exportspage "portfolio/frontend/exports"
	"portfolio/frontend/login"
	"portfolio/frontend/messages"
	"portfolio/frontend/portfolio"
	projectspage "portfolio/frontend/projects"
	"portfolio/frontend/resume"

	"github.com/go-chi/chi/v5"
)

func (s *Server) portfolioSettings() portfolio.Settings {
	return portfolio.Settings{Profile: s.Settings.Profile, PageSize: s.Settings.PageSize}
}

func (s *Server) nextSeed() uint64 {
	if s.Seed != nil {
		return s.Seed()
	}
	return background.RandomSeed()
}

// RegisterPublicRoutes registers the anonymous site.
func (s *Server) RegisterPublicRoutes(r chi.Router) {
	settings := s.portfolioSettings()
	r.Get("/", portfolio.HomePageQueryHandler(s.Backend, settings, s.Flash))
	r.Get("/projects/{id}", portfolio.ProjectDetailQueryHandler(s.Backend, settings, s.Flash))
	r.Post("/contact", contact.SubmitContactCommandHandler(s.Backend, s.Flash))
	r.Get("/resume", resume.DownloadResumeQueryHandler(s.Backend, s.Settings.ResumeFileName, s.Flash))

	r.Get("/background.json", background.SeedQueryHandler(s.nextSeed))
	r.Get("/background.svg", background.SVGQueryHandler(s.nextSeed))
}

// RegisterLoginRoutes registers login routes under /admin.
func (s *Server) RegisterLoginRoutes(r chi.Router) {
	d := s.loginDeps()
	r.With(s.redirectSignedIn).Get("/login", login.GetLoginScreenHandler(s.Flash))
	r.Post("/login", login.CreateLoginHandler(d))
}

// RegisterAdminRoutes registers routes that need a signed in admin.
func (s *Server) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", dashboard.DashboardPageQueryHandler(s.Backend, s.Audit, s.Settings.AdminPageSize, s.Flash))
	r.Post("/logout", login.LogoutHandler(s.loginDeps()))

	s.RegisterProjectRoutes(r)
	s.RegisterCertificateRoutes(r)

	r.Post("/messages/{id}/read", messages.MarkReadCommandHandler(s.Backend, s.Audit, s.Flash))
	r.Post("/messages/{id}/delete", messages.DeleteMessageCommandHandler(s.Backend, s.Audit, s.Flash))

	r.Get("/resume", resume.AdminDownloadResumeQueryHandler(s.Backend, s.Settings.ResumeFileName, s.Flash))
	r.Post("/resume", resume.UploadResumeCommandHandler(s.Backend, s.Audit, s.Flash))

	s.RegisterExportRoutes(r)
}

func (s *Server) RegisterProjectRoutes(r chi.Router) {
	r.Post("/projects", projectspage.CreateProjectCommandHandler(s.Backend, s.Audit, s.Flash))
	r.Get("/projects/{id}/edit", projectspage.EditProjectPageQueryHandler(s.Backend, s.Flash))
	r.Post("/projects/{id}", projectspage.UpdateProjectCommandHandler(s.Backend, s.Audit, s.Flash))
	r.Post("/projects/{id}/delete", projectspage.DeleteProjectCommandHandler(s.Backend, s.Audit, s.Flash))
	r.Post("/projects/{id}/publish", projectspage.PublishProjectCommandHandler(s.Backend, s.Audit, s.Flash))
	r.Get("/projects/{id}/activity", projectspage.ProjectLogsPageQueryHandler(s.DB, s.Flash))
}

func (s *Server) RegisterCertificateRoutes(r chi.Router) {
	r.Post("/certificates", certificates.CreateCertificateCommandHandler(s.Backend, s.Audit, s.Flash))
	r.Get("/certificates/{id}/edit", certificates.EditCertificatePageQueryHandler(s.Backend, s.Flash))
	r.Post("/certificates/{id}", certificates.UpdateCertificateCommandHandler(s.Backend, s.Audit, s.Flash))
	r.Post("/certificates/{id}/delete", certificates.DeleteCertificateCommandHandler(s.Backend, s.Audit, s.Flash))
}

func (s *Server) RegisterExportRoutes(r chi.Router) {
	r.Get("/exports/portfolio.pdf", exportspage.PortfolioPDFQueryHandler(s.Backend, s.Settings.Profile, s.Settings.SiteURL, s.Audit, s.Flash))
	r.Get("/exports/messages.csv", exportspage.MessagesCSVQueryHandler(s.Backend, s.Audit, s.Flash))
}
