package login

import (
	"github.com/a-h/templ"

	"portfolio/frontend/shared/html"
	"portfolio/infrastructure/flash"
)

type ScreenData struct {
	Error  string
	Toasts []flash.Toast
}

var loginTemplates = html.Parse("login", `
{{define "screen"}}
<section class="card" style="max-width:28rem;margin:4rem auto">
  <h1>Admin Login</h1>
  <p class="muted">Sign in to manage your portfolio.</p>
  {{if .Error}}<p class="toast toast-error" role="alert">{{.Error}}</p>{{end}}
  <form class="stack" method="post" action="/admin/login">
    <label>Username <input name="username" autocomplete="username" required></label>
    <label>Password <input name="password" type="password" autocomplete="current-password" required></label>
    <button type="submit">Login</button>
  </form>
  <p><a href="/">Back to Portfolio</a></p>
</section>
{{end}}`)

func GetLoginScreen(data ScreenData) templ.Component {
	return html.Page(html.Layout{Title: "Admin Login", Toasts: data.Toasts}, html.View(loginTemplates, "screen", data))
}
