package portfolio

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"portfolio/frontend/contact"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
	"portfolio/infrastructure/markdown"
	"portfolio/models"
)

// NormalizeFilter maps anything unknown to FilterAll.
func NormalizeFilter(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case FilterTeam:
		return FilterTeam
	case FilterSolo:
		return FilterSolo
	}
	return FilterAll
}

func pageParam(q url.Values, key string) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// homeURL rewrites one query parameter of the current page. An empty value
// removes it.
func homeURL(q url.Values, anchor string, kv ...string) string {
	next := url.Values{}
	for k, v := range q {
		next[k] = append([]string(nil), v...)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			next.Del(kv[i])
		} else {
			next.Set(kv[i], kv[i+1])
		}
	}
	u := "/"
	if enc := next.Encode(); enc != "" {
		u += "?" + enc
	}
	return u + "#" + anchor
}

func emptyText(filter, tag string) string {
	switch {
	case tag != "":
		return "No projects found using " + tag + "."
	case filter != FilterAll:
		return "No projects found for the selected filter."
	}
	return "No projects available."
}

func projectCard(p models.Project) ProjectCard {
	return ProjectCard{
		Project:     p,
		Kind:        p.Kind(),
		Description: markdown.Render(p.Description),
		DetailURL:   "/projects/" + url.PathEscape(p.ID.String()),
	}
}

// HomePageQueryHandler renders the public one-page site. Projects, tags and
// certificates load concurrently; a failed section renders its empty state
// and an error toast while the others still render.
func HomePageQueryHandler(api PublicAPI, settings Settings, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := NormalizeFilter(q.Get("filter"))
		tag := strings.TrimSpace(q.Get("tag"))
		page := pageParam(q, "page")
		certPage := pageParam(q, "cpage")
		expanded := ParseExpanded(q.Get("expand"))

		var (
			projects    models.Page[models.Project]
			tags        []string
			certs       models.Page[models.Certificate]
			projectsErr error
			tagsErr     error
			certsErr    error
		)
		var g errgroup.Group
		g.Go(func() error {
			if filter == FilterAll {
				projects, projectsErr = api.ListProjects(r.Context(), page, settings.PageSize)
			} else {
				projects, projectsErr = api.ListProjectsByType(r.Context(), filter, page, settings.PageSize)
			}
			return nil
		})
		g.Go(func() error {
			tags, tagsErr = api.ProjectTags(r.Context())
			return nil
		})
		g.Go(func() error {
			certs, certsErr = api.ListCertificates(r.Context(), certPage, settings.PageSize)
			return nil
		})
		_ = g.Wait()

		data := HomeData{
			Profile:         settings.Profile,
			Specializations: Specializations,
			Skills:          Skills,
			Toasts:          flashes.Pop(w, r),
		}
		if d := flashes.PopDraft(w, r, contact.DraftName); d != nil {
			data.Contact = ContactForm{Name: d["name"], Email: d["email"], Message: d["message"]}
		}

		data.Projects = ProjectsSection{
			Filter:    filter,
			Tag:       tag,
			Page:      page,
			EmptyText: emptyText(filter, tag),
		}
		for _, f := range []struct{ value, label string }{
			{FilterAll, "All Projects"}, {FilterTeam, "Team Projects"}, {FilterSolo, "Solo Projects"},
		} {
			data.Projects.Filters = append(data.Projects.Filters, FilterLink{
				Label:  f.label,
				URL:    homeURL(q, "projects", "filter", f.value, "page", "", "tag", ""),
				Active: f.value == filter,
			})
		}
		if projectsErr != nil {
			slog.Error("load projects failed", slog.String("filter", filter), slog.Any("err", projectsErr))
			data.Projects.Error = true
			data.Toasts = append(data.Toasts, flash.Error("Failed to load projects. Please try again later."))
		} else {
			for _, p := range projects.Content {
				if filter != FilterAll && p.Kind() != filter {
					continue
				}
				if tag != "" && !p.HasTechnology(tag) {
					continue
				}
				data.Projects.Cards = append(data.Projects.Cards, projectCard(p))
			}
			if projects.HasPrev() {
				data.Projects.PrevURL = homeURL(q, "projects", "page", strconv.Itoa(page-1))
			}
			if projects.HasNext() {
				data.Projects.NextURL = homeURL(q, "projects", "page", strconv.Itoa(page+1))
			}
		}
		if tagsErr != nil {
			slog.Warn("load project tags failed", slog.Any("err", tagsErr))
		}
		for _, t := range tags {
			active := strings.EqualFold(t, tag)
			target := t
			if active {
				target = ""
			}
			data.Projects.Tags = append(data.Projects.Tags, TagChip{
				Name:   t,
				URL:    homeURL(q, "projects", "tag", target),
				Active: active,
			})
		}

		if certsErr != nil {
			slog.Error("load certificates failed", slog.Any("err", certsErr))
			data.Certificates.Error = true
			data.Toasts = append(data.Toasts, flash.Error("Failed to load certificates. Please try again later."))
		} else {
			for _, c := range certs.Content {
				id := c.ID.String()
				card := CertificateCard{
					Certificate: c,
					Description: markdown.Render(c.Description),
					Long:        IsLong(c.Description),
					Expanded:    expanded.Has(id),
				}
				if card.Long {
					card.ToggleURL = homeURL(q, "cert-"+id, "expand", expanded.Toggle(id).String())
					card.ToggleLabel = "Read More"
					if card.Expanded {
						card.ToggleLabel = "Read Less"
					}
				}
				data.Certificates.Cards = append(data.Certificates.Cards, card)
			}
			if certs.HasPrev() {
				data.Certificates.PrevURL = homeURL(q, "certificates", "cpage", strconv.Itoa(certPage-1))
			}
			if certs.HasNext() {
				data.Certificates.NextURL = homeURL(q, "certificates", "cpage", strconv.Itoa(certPage+1))
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := HomePage(data).Render(r.Context(), w); err != nil {
			slog.Error("render home page failed", slog.Any("err", err))
			http.Error(w, "failed to render page", http.StatusInternalServerError)
		}
	}
}

// ProjectDetailQueryHandler renders one project.
func ProjectDetailQueryHandler(api PublicAPI, settings Settings, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			http.NotFound(w, r)
			return
		}
		p, err := api.GetProject(r.Context(), id)
		if err != nil {
			if backend.IsNotFound(err) {
				http.NotFound(w, r)
				return
			}
			slog.Error("load project failed", slog.String("id", id), slog.Any("err", err))
			flashes.Add(w, r, flash.Error("Failed to load project. Please try again later."))
			http.Redirect(w, r, "/#projects", http.StatusSeeOther)
			return
		}

		data := DetailData{Profile: settings.Profile, Card: projectCard(p), Toasts: flashes.Pop(w, r)}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProjectDetailPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render project page failed", slog.Any("err", err))
			http.Error(w, "failed to render page", http.StatusInternalServerError)
		}
	}
}
