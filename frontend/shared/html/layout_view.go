package html

import (
	"context"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"portfolio/frontend/shared/nav"
	"portfolio/infrastructure/flash"
	"portfolio/infrastructure/markdown"
)

// Owner is the profile shown in the header and footer.
type Owner struct {
	Name     string
	Email    string
	GitHub   string
	LinkedIn string
}

// Layout is the frame around every page.
type Layout struct {
	Title      string
	Owner      Owner
	Toasts     []flash.Toast
	Nav        *nav.TopNavData
	Background bool
}

type layoutData struct {
	Layout
	Year        int
	PublicLinks []nav.PublicLink
	Tabs        []string
	CSRF        template.HTML
}

// Funcs is the helper set every view template is parsed with.
func Funcs() template.FuncMap {
	fm := markdown.FuncMap()
	fm["join"] = strings.Join
	fm["title"] = func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
	fm["add"] = func(a, b int) int { return a + b }
	return fm
}

// Parse builds a view template set with Funcs. It panics on bad markup.
func Parse(name, src string) *template.Template {
	return template.Must(template.New(name).Funcs(Funcs()).Parse(src))
}

// View renders one named template of t as a component.
func View(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}

// Page wraps body in the shared document frame.
func Page(l Layout, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data := layoutData{
			Layout:      l,
			Year:        time.Now().Year(),
			PublicLinks: nav.PublicLinks,
			Tabs:        nav.Tabs,
			CSRF:        CSRFFormScript(),
		}
		if err := layoutTemplates.ExecuteTemplate(w, "head", data); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		return layoutTemplates.ExecuteTemplate(w, "foot", data)
	})
}

var layoutTemplates = Parse("layout", `
{{define "head"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}{{if .Owner.Name}} | {{.Owner.Name}}{{end}}</title>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
{{if .Background}}<canvas id="bg-canvas" class="bg-canvas" data-seed="/background.json" aria-hidden="true"></canvas>
<noscript><img class="bg-canvas" src="/background.svg" alt=""></noscript>{{end}}
<header class="site-header">
{{if .Nav}}
  <a class="brand" href="/admin">Admin Dashboard</a>
  <nav class="tabs">
  {{$active := .Nav.ActiveTab}}{{$unread := .Nav.UnreadCount}}
  {{range .Tabs}}<a href="/admin?tab={{.}}" class="tab{{if eq . $active}} active{{end}}">{{title .}}{{if and (eq . "messages") (gt $unread 0)}} <span class="badge">{{$unread}}</span>{{end}}</a>{{end}}
  </nav>
  <span class="user">{{.Nav.Username}}</span>
  <a href="/">View site</a>
  <form method="post" action="/admin/logout"><button type="submit">Logout</button></form>
{{else}}
  <a class="brand" href="/">{{.Owner.Name}}</a>
  <nav>{{range .PublicLinks}}<a href="/{{.Anchor}}">{{.Label}}</a>{{end}}</nav>
{{end}}
</header>
{{if .Toasts}}<div class="toasts" role="status">{{range .Toasts}}
  <div class="toast toast-{{.Kind}}"><strong>{{.Title}}</strong> {{.Message}}</div>{{end}}
</div>{{end}}
<main>
{{end}}

{{define "foot"}}
</main>
<footer class="site-footer">
  <p>&copy; {{.Year}} {{.Owner.Name}}. All rights reserved.</p>
  <p class="social">
  {{if .Owner.GitHub}}<a href="{{.Owner.GitHub}}" rel="noopener noreferrer" target="_blank">GitHub</a>{{end}}
  {{if .Owner.LinkedIn}}<a href="{{.Owner.LinkedIn}}" rel="noopener noreferrer" target="_blank">LinkedIn</a>{{end}}
  {{if .Owner.Email}}<a href="mailto:{{.Owner.Email}}">Email</a>{{end}}
  </p>
</footer>
{{.CSRF}}
{{if .Background}}<script src="/assets/background.js" defer></script>{{end}}
</body>
</html>
{{end}}
`)
