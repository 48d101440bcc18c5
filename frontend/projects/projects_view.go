package projects

import (
	"github.com/a-h/templ"

	"portfolio/frontend/shared/html"
)

var projectTemplates = html.Parse("projects", `
{{define "form"}}
<form class="card stack" method="post" action="{{.Action}}" enctype="multipart/form-data">
  <label>Title <input name="title" value="{{.Title}}" required></label>
  <label>Overview <input name="overview" value="{{.Overview}}" required></label>
  <label>Description (Markdown) <textarea name="description" rows="6" required>{{.Description}}</textarea></label>
  <label>Technologies (comma separated) <input name="technologies" value="{{.Technologies}}" required></label>
  <div class="grid">
    <label>Start date <input name="startDate" type="date" value="{{.StartDate}}" required></label>
    <label>End date <input name="endDate" type="date" value="{{.EndDate}}"></label>
  </div>
  <label>GitHub URL <input name="githubUrl" type="url" value="{{.GitHubURL}}"></label>
  <label>Live URL <input name="liveUrl" type="url" value="{{.LiveURL}}"></label>
  <label><input name="isTeamProj" type="checkbox" value="true"{{if .IsTeamProj}} checked{{end}}> Team project</label>
  {{if .ImageURL}}<img src="{{.ImageURL}}" alt="Current image" style="max-width:12rem">{{end}}
  <label>Image <input name="image" type="file" accept="image/*"></label>
  <button type="submit">{{.Submit}}</button>
</form>
{{end}}

{{define "edit"}}
<section>
  <p><a href="/admin?tab=projects">&larr; Back to projects</a> &middot; <a href="/admin/projects/{{.ProjectID}}/activity">Activity</a></p>
  <h1>Edit Project</h1>
  {{template "form" .Form}}
</section>
{{end}}

{{define "logs"}}
<section>
  <p><a href="/admin?tab=projects">&larr; Back to projects</a></p>
  <h1>Project Activity{{if .ProjectTitle}}: {{.ProjectTitle}}{{end}}</h1>
  {{if .Rows}}
  <table>
    <thead><tr><th>When</th><th>Who</th><th>Action</th><th>Before</th><th>After</th></tr></thead>
    <tbody>{{range .Rows}}
      <tr><td>{{.CreatedAtUK}}</td><td>{{.Actor}}</td><td>{{.Action}}</td><td><code>{{truncate .BeforeJSON 120}}</code></td><td><code>{{truncate .AfterJSON 120}}</code></td></tr>{{end}}
    </tbody>
  </table>
  {{else}}
  <p class="empty">No activity recorded for this project.</p>
  {{end}}
</section>
{{end}}`)

// Form renders the add or edit project form on its own.
func Form(data FormData) templ.Component {
	return html.View(projectTemplates, "form", data)
}

func EditProjectPage(data EditPageData) templ.Component {
	return html.Page(html.Layout{
		Title:  "Edit Project",
		Toasts: data.Toasts,
		Nav:    &data.Nav,
	}, html.View(projectTemplates, "edit", data))
}

func ProjectLogsPage(data ProjectLogsPageData) templ.Component {
	return html.Page(html.Layout{
		Title:  "Project Activity",
		Toasts: data.Toasts,
		Nav:    &data.Nav,
	}, html.View(projectTemplates, "logs", data))
}
