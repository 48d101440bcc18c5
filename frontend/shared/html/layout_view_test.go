package html

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"portfolio/frontend/shared/nav"
	"portfolio/infrastructure/flash"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestPagePublicFrame(t *testing.T) {
	body := View(Parse("body", `{{define "x"}}<p>{{.}}</p>{{end}}`), "x", "<hello>")
	out := render(t, Page(Layout{
		Title:      "Portfolio",
		Owner:      Owner{Name: "Ada", GitHub: "https://github.com/ada"},
		Toasts:     []flash.Toast{flash.Error("Failed to load projects. Please try again later.")},
		Background: true,
	}, body))

	for _, want := range []string{
		"<title>Portfolio | Ada</title>",
		"<p>&lt;hello&gt;</p>",
		"toast-error",
		`href="https://github.com/ada"`,
		`data-seed="/background.json"`,
		`name = "_csrf"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
	if strings.Contains(out, "/admin/logout") {
		t.Fatalf("public page must not render admin nav")
	}
}

func TestPageAdminFrame(t *testing.T) {
	out := render(t, Page(Layout{
		Title: "Dashboard",
		Nav:   &nav.TopNavData{Username: "admin", ActiveTab: nav.TabMessages, UnreadCount: 4},
	}, templ.NopComponent))
	if !strings.Contains(out, `action="/admin/logout"`) {
		t.Fatalf("expected logout form")
	}
	if !strings.Contains(out, `<span class="badge">4</span>`) {
		t.Fatalf("expected unread badge")
	}
	if !strings.Contains(out, `class="tab active">Messages`) {
		t.Fatalf("expected active messages tab")
	}
	if strings.Contains(out, "bg-canvas") {
		t.Fatalf("admin pages have no background")
	}
}
