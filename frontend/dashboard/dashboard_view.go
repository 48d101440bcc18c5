package dashboard

import (
	"github.com/a-h/templ"

	"portfolio/frontend/shared/html"
)

var dashboardTemplates = html.Parse("dashboard", `
{{define "projects"}}
<section>
  <h2>Manage Projects</h2>
  <p><a href="/admin/exports/portfolio.pdf">Export portfolio PDF</a></p>
  {{if .Rows}}
  <table>
    <thead><tr><th>Title</th><th>Type</th><th>Technologies</th><th>Status</th><th></th></tr></thead>
    <tbody>{{range .Rows}}
      <tr>
        <td>{{.Project.Title}}</td>
        <td>{{title .Kind}}</td>
        <td>{{join .Project.Technologies ", "}}</td>
        <td>{{if .Project.Published}}<span class="badge">Published</span>{{else}}<span class="badge muted">Draft</span>{{end}}</td>
        <td class="actions">
          <form method="post" action="/admin/projects/{{.Project.ID}}/publish"><input type="hidden" name="state" value="{{.NextState}}"><button type="submit">{{if .NextState}}Publish{{else}}Unpublish{{end}}</button></form>
          <a href="/admin/projects/{{.Project.ID}}/edit">Edit</a>
          <a href="/admin/projects/{{.Project.ID}}/activity">Activity</a>
          <form method="post" action="/admin/projects/{{.Project.ID}}/delete" data-confirm="Are you sure you want to delete this project?"><button type="submit">Delete</button></form>
        </td>
      </tr>{{end}}
    </tbody>
  </table>
  {{else}}
  <p class="empty">{{if .Error}}Projects are unavailable right now.{{else}}No projects yet.{{end}}</p>
  {{end}}
  <nav class="pager">
    {{if .PrevURL}}<a href="{{.PrevURL}}">Previous</a>{{end}}
    {{if .NextURL}}<a href="{{.NextURL}}">Next</a>{{end}}
  </nav>
  <h3>Add New Project</h3>
  {{.AddForm}}
</section>
{{end}}

{{define "messages"}}
<section>
  <h2>Messages{{if .Unread}} <span class="badge">{{.Unread}} unread</span>{{end}}</h2>
  <p><a href="/admin/exports/messages.csv">Export messages CSV</a></p>
  {{if .Rows}}
  <div class="stack">{{range .Rows}}
    <article class="card{{if not .Read}} unread{{end}}">
      <header><strong>{{.Name}}</strong> &lt;<a href="mailto:{{.Email}}">{{.Email}}</a>&gt; <span class="muted">{{.Date}}</span></header>
      <p>{{.Message}}</p>
      <div class="actions">
        {{if not .Read}}<form method="post" action="/admin/messages/{{.ID}}/read"><button type="submit">Mark as read</button></form>{{end}}
        <form method="post" action="/admin/messages/{{.ID}}/delete" data-confirm="Are you sure you want to delete this message?"><button type="submit">Delete</button></form>
      </div>
    </article>{{end}}
  </div>
  {{else}}
  <p class="empty">{{if .Error}}Messages are unavailable right now.{{else}}No messages yet.{{end}}</p>
  {{end}}
</section>
{{end}}

{{define "resume"}}
<section>
  <h2>Resume</h2>
  <p><a href="/admin/resume">Download current resume</a></p>
  <form class="card stack" method="post" action="/admin/resume" enctype="multipart/form-data">
    <label>PDF file (max 10 MB) <input name="file" type="file" accept="application/pdf" required></label>
    <button type="submit">Upload Resume</button>
  </form>
</section>
{{end}}

{{define "certificates"}}
<section>
  <h2>Manage Certificates</h2>
  {{if .Rows}}
  <table>
    <thead><tr><th>Title</th><th>Issuer</th><th>Issued</th><th></th></tr></thead>
    <tbody>{{range .Rows}}
      <tr>
        <td>{{.Title}}</td>
        <td>{{.Issuer}}</td>
        <td>{{.IssueDate}}</td>
        <td class="actions">
          <a href="/admin/certificates/{{.ID}}/edit">Edit</a>
          <form method="post" action="/admin/certificates/{{.ID}}/delete" data-confirm="Are you sure you want to delete this certificate?"><button type="submit">Delete</button></form>
        </td>
      </tr>{{end}}
    </tbody>
  </table>
  {{else}}
  <p class="empty">{{if .Error}}Certificates are unavailable right now.{{else}}No certificates yet.{{end}}</p>
  {{end}}
  <nav class="pager">
    {{if .PrevURL}}<a href="{{.PrevURL}}">Previous</a>{{end}}
    {{if .NextURL}}<a href="{{.NextURL}}">Next</a>{{end}}
  </nav>
  <h3>Add New Certificate</h3>
  {{.AddForm}}
</section>
{{end}}

{{define "activity"}}
<section>
  <h2>Recent Activity</h2>
  {{if .}}
  <table>
    <thead><tr><th>When</th><th>Who</th><th>Action</th><th>Entity</th></tr></thead>
    <tbody>{{range .}}
      <tr><td>{{.When}}</td><td>{{.Username}}</td><td>{{.Action}}</td><td>{{.EntityType}}{{if .EntityID}} #{{.EntityID}}{{end}}</td></tr>{{end}}
    </tbody>
  </table>
  {{else}}
  <p class="empty">No activity yet.</p>
  {{end}}
</section>
{{end}}

{{define "dashboard"}}
{{if eq .Tab "messages"}}{{template "messages" .Messages}}
{{else if eq .Tab "resume"}}{{template "resume" .}}
{{else if eq .Tab "certificates"}}{{template "certificates" .Certificates}}
{{else if eq .Tab "activity"}}{{template "activity" .Activity}}
{{else}}{{template "projects" .Projects}}{{end}}
{{end}}`)

func DashboardPage(data PageData) templ.Component {
	return html.Page(html.Layout{
		Title:  "Admin Dashboard",
		Toasts: data.Toasts,
		Nav:    &data.Nav,
	}, html.View(dashboardTemplates, "dashboard", data))
}
