package certificates

import (
	"github.com/a-h/templ"

	"portfolio/frontend/shared/html"
)

var certificateTemplates = html.Parse("certificates", `
{{define "form"}}
<form class="card stack" method="post" action="{{.Action}}" enctype="multipart/form-data">
  <label>Title <input name="title" value="{{.Title}}" required></label>
  <label>Issuer <input name="issuer" value="{{.Issuer}}" required></label>
  <label>Issue date <input name="issueDate" type="date" value="{{.IssueDate}}" required></label>
  <label>Credential ID <input name="credentialId" value="{{.CredentialID}}"></label>
  <label>Credential URL <input name="credentialUrl" type="url" value="{{.CredentialURL}}"></label>
  <label>Description (Markdown) <textarea name="description" rows="4">{{.Description}}</textarea></label>
  <label>Technologies (comma separated) <input name="technologies" value="{{.Technologies}}"></label>
  <label>Image <input name="image" type="file" accept="image/*"></label>
  <button type="submit">{{.Submit}}</button>
</form>
{{end}}

{{define "edit"}}
<section>
  <p><a href="/admin?tab=certificates">&larr; Back to certificates</a></p>
  <h1>Edit Certificate</h1>
  {{template "form" .Form}}
</section>
{{end}}`)

func Form(data FormData) templ.Component {
	return html.View(certificateTemplates, "form", data)
}

func EditCertificatePage(data EditPageData) templ.Component {
	return html.Page(html.Layout{
		Title:  "Edit Certificate",
		Toasts: data.Toasts,
		Nav:    &data.Nav,
	}, html.View(certificateTemplates, "edit", data))
}
