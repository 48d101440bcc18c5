package dashboard

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"portfolio/frontend/certificates"
	"portfolio/frontend/projects"
	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/frontend/shared/nav"
	"portfolio/frontend/shared/respond"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/flash"
	"portfolio/models"
)

const activityLimit = 50

func pageParam(q url.Values, key string) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func tabURL(tab, key string, page int) string {
	v := url.Values{"tab": {tab}}
	if page > 0 {
		v.Set(key, strconv.Itoa(page))
	}
	return "/admin?" + v.Encode()
}

func renderFragment(r *http.Request, c templ.Component) template.HTML {
	s, err := templ.ToGoHTML(r.Context(), c)
	if err != nil {
		slog.Error("render form failed", slog.Any("err", err))
		return ""
	}
	return s
}

// DashboardPageQueryHandler renders the admin tabs. Projects, certificates,
// messages and the unread count load concurrently; a rejected credential on
// any of them ends the session.
func DashboardPageQueryHandler(api AdminAPI, auditSvc *audit.Service, pageSize int, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		tab := nav.NormalizeTab(q.Get("tab"))
		page := pageParam(q, "page")
		certPage := pageParam(q, "cpage")

		var (
			projectList models.Page[models.Project]
			certList    models.Page[models.Certificate]
			messageList models.Page[models.ContactMessage]
			unread      int64
			logs        []models.AuditLog
			projectsErr error
			certsErr    error
			messagesErr error
			unreadErr   error
			logsErr     error
		)
		var g errgroup.Group
		g.Go(func() error {
			projectList, projectsErr = api.AdminListProjects(r.Context(), page, pageSize)
			return nil
		})
		g.Go(func() error {
			certList, certsErr = api.ListCertificates(r.Context(), certPage, pageSize)
			return nil
		})
		g.Go(func() error {
			messageList, messagesErr = api.ListMessages(r.Context())
			return nil
		})
		g.Go(func() error {
			unread, unreadErr = api.UnreadCount(r.Context())
			return nil
		})
		if auditSvc != nil {
			g.Go(func() error {
				logs, logsErr = auditSvc.Recent(r.Context(), activityLimit)
				return nil
			})
		}
		_ = g.Wait()

		for _, err := range []error{projectsErr, certsErr, messagesErr, unreadErr} {
			if respond.Unauthorized(err) {
				respond.ToLogin(w, r)
				return
			}
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		data := PageData{
			Nav:    nav.BuildTopNavData(session, tab),
			Tab:    tab,
			Toasts: flashes.Pop(w, r),
		}

		data.Projects.Page = page
		projectForm := projects.NewForm()
		if tab == nav.TabProjects {
			projectForm = projectForm.WithDraft(flashes.PopDraft(w, r, projects.NewDraft))
		}
		data.Projects.AddForm = renderFragment(r, projects.Form(projectForm))
		if projectsErr != nil {
			slog.Error("load admin projects failed", slog.Any("err", projectsErr))
			data.Projects.Error = true
			data.Toasts = append(data.Toasts, flash.Error("Failed to load projects. Please try again."))
		} else {
			for _, p := range projectList.Content {
				data.Projects.Rows = append(data.Projects.Rows, ProjectRow{Project: p, Kind: p.Kind(), NextState: !p.Published})
			}
			if projectList.HasPrev() {
				data.Projects.PrevURL = tabURL(nav.TabProjects, "page", page-1)
			}
			if projectList.HasNext() {
				data.Projects.NextURL = tabURL(nav.TabProjects, "page", page+1)
			}
		}

		certForm := certificates.NewForm()
		if tab == nav.TabCertificates {
			certForm = certForm.WithDraft(flashes.PopDraft(w, r, certificates.NewDraft))
		}
		data.Certificates.AddForm = renderFragment(r, certificates.Form(certForm))
		if certsErr != nil {
			slog.Error("load admin certificates failed", slog.Any("err", certsErr))
			data.Certificates.Error = true
			data.Toasts = append(data.Toasts, flash.Error("Failed to load certificates. Please try again."))
		} else {
			data.Certificates.Rows = certList.Content
			if certList.HasPrev() {
				data.Certificates.PrevURL = tabURL(nav.TabCertificates, "cpage", certPage-1)
			}
			if certList.HasNext() {
				data.Certificates.NextURL = tabURL(nav.TabCertificates, "cpage", certPage+1)
			}
		}

		if messagesErr != nil {
			slog.Error("load messages failed", slog.Any("err", messagesErr))
			data.Messages.Error = true
			data.Toasts = append(data.Toasts, flash.Error("Failed to load messages. Please try again."))
		} else {
			data.Messages.Rows = messageList.Content
		}
		if unreadErr != nil {
			slog.Warn("load unread count failed", slog.Any("err", unreadErr))
			for _, m := range data.Messages.Rows {
				if !m.Read {
					unread++
				}
			}
		}
		data.Messages.Unread = unread
		data.Nav.UnreadCount = unread

		if logsErr != nil {
			slog.Error("load activity failed", slog.Any("err", logsErr))
		}
		for _, l := range logs {
			data.Activity = append(data.Activity, ActivityRow{
				When:       l.CreatedAt.Local().Format("02/01/2006 15:04"),
				Username:   l.Username,
				Action:     l.Action,
				EntityType: l.EntityType,
				EntityID:   l.EntityID,
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := DashboardPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}
	}
}
