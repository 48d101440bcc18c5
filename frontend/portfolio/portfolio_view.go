package portfolio

import (
	"github.com/a-h/templ"

	"portfolio/frontend/shared/html"
)

var homeTemplates = html.Parse("home", `
{{define "hero"}}
<section id="home" class="hero">
  <div>
    <h1>Hi, I'm <span class="brand">{{.Name}}</span></h1>
    <div class="roles" data-roles="{{join .Roles "|"}}">{{if .Roles}}{{index .Roles 0}}{{end}}</div>
    <p class="muted">{{.Tagline}}</p>
    <p>
      <a class="chip active" href="#projects">View My Work</a>
      <a class="chip" href="/resume">Download Resume</a>
    </p>
    <p class="social">
      {{if .GitHub}}<a href="{{.GitHub}}" target="_blank" rel="noopener noreferrer">GitHub</a>{{end}}
      {{if .LinkedIn}}<a href="{{.LinkedIn}}" target="_blank" rel="noopener noreferrer">LinkedIn</a>{{end}}
      {{if .Email}}<a href="mailto:{{.Email}}">Email</a>{{end}}
    </p>
  </div>
</section>
{{end}}

{{define "about"}}
<section id="about">
  <h2>About Me</h2>
  <div class="grid">
    <div class="card">
      <h3>{{if .Profile.Roles}}{{index .Profile.Roles 0}}{{else}}Developer{{end}}</h3>
      <p class="muted">{{.Profile.Tagline}}</p>
    </div>
    <div class="card">
      <h3>Specialization</h3>
      <ul>{{range .Specializations}}<li>{{.Title}}</li>{{end}}</ul>
    </div>
  </div>
  <h3>Skills &amp; Technologies</h3>
  <div class="grid">{{range .Skills}}
    <div class="card"><div class="muted">{{.Category}}</div><strong>{{.Name}}</strong></div>{{end}}
  </div>
</section>
{{end}}

{{define "projectCard"}}
<article class="card">
  {{if .Project.ImageURL}}<img src="{{.Project.ImageURL}}" alt="{{.Project.Title}}" loading="lazy" style="width:100%">{{end}}
  <span class="badge">{{if eq .Kind "team"}}Team{{else}}Solo{{end}}</span>
  <h3><a href="{{.DetailURL}}">{{.Project.Title}}</a></h3>
  {{if .Project.Overview}}<p class="muted">{{.Project.Overview}}</p>{{end}}
  <div class="clamp">{{.Description}}</div>
  <p>{{range .Project.Technologies}}<span class="chip">{{.}}</span> {{end}}</p>
  <p>
    {{if .Project.GitHubURL}}<a href="{{.Project.GitHubURL}}" target="_blank" rel="noopener noreferrer">Code</a>{{end}}
    {{if .Project.LiveURL}}<a href="{{.Project.LiveURL}}" target="_blank" rel="noopener noreferrer">Live</a>{{end}}
  </p>
</article>
{{end}}

{{define "projects"}}
<section id="projects">
  <h2>Featured Projects</h2>
  <nav class="pager">{{range .Filters}}<a class="chip{{if .Active}} active{{end}}" href="{{.URL}}">{{.Label}}</a>{{end}}</nav>
  {{if .Tags}}<p>{{range .Tags}}<a class="chip{{if .Active}} active{{end}}" href="{{.URL}}">{{.Name}}</a> {{end}}</p>{{end}}
  {{if .Cards}}
  <div class="grid">{{range .Cards}}{{template "projectCard" .}}{{end}}</div>
  {{else}}
  <p class="empty">{{if .Error}}Projects are unavailable right now.{{else}}{{.EmptyText}}{{end}}</p>
  {{end}}
  <nav class="pager">
    {{if .PrevURL}}<a href="{{.PrevURL}}">Previous</a>{{end}}
    {{if .NextURL}}<a href="{{.NextURL}}">Next</a>{{end}}
  </nav>
</section>
{{end}}

{{define "certificates"}}
<section id="certificates">
  <h2>Certifications</h2>
  <p class="muted">Professional certifications demonstrating my commitment to continuous learning.</p>
  {{if .Cards}}
  <div class="grid">{{range .Cards}}
    <article class="card" id="cert-{{.Certificate.ID}}">
      <h3>{{.Certificate.Title}}</h3>
      <p class="muted">{{.Certificate.Issuer}}</p>
      {{if .Certificate.Description}}
      <div class="{{if and .Long (not .Expanded)}}clamp{{end}}">{{.Description}}</div>
      {{if .Long}}<a class="toggle" href="{{.ToggleURL}}">{{.ToggleLabel}}</a>{{end}}
      {{end}}
      <p>{{range .Certificate.Technologies}}<span class="chip">{{.}}</span> {{end}}</p>
      <p><span class="badge">{{.Certificate.IssueDate}}</span>
      {{if .Certificate.CredentialURL}}<a href="{{.Certificate.CredentialURL}}" target="_blank" rel="noopener noreferrer">View</a>{{end}}</p>
    </article>{{end}}
  </div>
  {{else}}
  <p class="empty">{{if .Error}}Certificates are unavailable right now.{{else}}No certificates available.{{end}}</p>
  {{end}}
  <nav class="pager">
    {{if .PrevURL}}<a href="{{.PrevURL}}">Previous</a>{{end}}
    {{if .NextURL}}<a href="{{.NextURL}}">Next</a>{{end}}
  </nav>
</section>
{{end}}

{{define "contact"}}
<section id="contact">
  <h2>Get In Touch</h2>
  <div class="grid">
    <div class="card">
      <h3>Contact Information</h3>
      {{with .Profile}}
      {{if .Email}}<p><strong>Email</strong><br><span class="muted">{{.Email}}</span></p>{{end}}
      {{if .Location}}<p><strong>Location</strong><br><span class="muted">{{.Location}}</span></p>{{end}}
      {{end}}
    </div>
    <form class="card stack" method="post" action="/contact">
      <h3>Send Me a Message</h3>
      <label>Name <input name="name" value="{{.Contact.Name}}" placeholder="Your Name" required></label>
      <label>Email <input name="email" type="email" value="{{.Contact.Email}}" placeholder="your.email@example.com" required></label>
      <label>Message <textarea name="message" rows="5" placeholder="Tell me about your project or just say hello..." required>{{.Contact.Message}}</textarea></label>
      <button type="submit">Send Message</button>
    </form>
  </div>
</section>
{{end}}

{{define "home"}}
{{template "hero" .Profile}}
{{template "about" .}}
{{template "projects" .Projects}}
{{template "certificates" .Certificates}}
{{template "contact" .}}
<script src="/assets/site.js" defer></script>
{{end}}

{{define "detail"}}
<section>
  <p><a href="/#projects">&larr; Back to projects</a></p>
  {{with .Card}}
  <article class="card">
    {{if .Project.ImageURL}}<img src="{{.Project.ImageURL}}" alt="{{.Project.Title}}" style="width:100%">{{end}}
    <span class="badge">{{if eq .Kind "team"}}Team{{else}}Solo{{end}} project</span>
    <h1>{{.Project.Title}}</h1>
    {{if .Project.Overview}}<p class="muted">{{.Project.Overview}}</p>{{end}}
    <p class="muted">{{.Project.StartDate}}{{if .Project.EndDate}} to {{.Project.EndDate}}{{else if .Project.StartDate}} to present{{end}}</p>
    <div>{{.Description}}</div>
    <p>{{range .Project.Technologies}}<span class="chip">{{.}}</span> {{end}}</p>
    <p>
      {{if .Project.GitHubURL}}<a href="{{.Project.GitHubURL}}" target="_blank" rel="noopener noreferrer">Source code</a>{{end}}
      {{if .Project.LiveURL}}<a href="{{.Project.LiveURL}}" target="_blank" rel="noopener noreferrer">Live demo</a>{{end}}
    </p>
  </article>
  {{end}}
</section>
{{end}}`)

func HomePage(data HomeData) templ.Component {
	return html.Page(html.Layout{
		Title:      "Portfolio",
		Owner:      data.Profile.Owner,
		Toasts:     data.Toasts,
		Background: true,
	}, html.View(homeTemplates, "home", data))
}

func ProjectDetailPage(data DetailData) templ.Component {
	return html.Page(html.Layout{
		Title:      data.Card.Project.Title,
		Owner:      data.Profile.Owner,
		Toasts:     data.Toasts,
		Background: true,
	}, html.View(homeTemplates, "detail", data))
}
