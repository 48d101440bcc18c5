package certificates

import (
	"context"
	"net/http"
	"strings"

	"portfolio/frontend/shared/nav"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
	"portfolio/models"
)

type AdminAPI interface {
	ListCertificates(ctx context.Context, page, size int) (models.Page[models.Certificate], error)
	CreateCertificate(ctx context.Context, in backend.CertificateInput) (models.Certificate, error)
	UpdateCertificate(ctx context.Context, id string, in backend.CertificateInput) (models.Certificate, error)
	DeleteCertificate(ctx context.Context, id string) error
}

type FormData struct {
	Action        string
	Submit        string
	Title         string
	Issuer        string
	IssueDate     string
	CredentialID  string
	CredentialURL string
	Description   string
	Technologies  string
}

func NewForm() FormData {
	return FormData{Action: "/admin/certificates", Submit: "Add Certificate"}
}

func EditForm(c models.Certificate) FormData {
	return FormData{
		Action:        "/admin/certificates/" + c.ID.String(),
		Submit:        "Update Certificate",
		Title:         c.Title,
		Issuer:        c.Issuer,
		IssueDate:     c.IssueDate,
		CredentialID:  c.CredentialID,
		CredentialURL: c.CredentialURL,
		Description:   c.Description,
		Technologies:  strings.Join(c.Technologies, ", "),
	}
}

const NewDraft = "certificate-new"

func EditDraft(id string) string { return "certificate-" + id }

var draftFields = []string{"title", "issuer", "issueDate", "credentialId", "credentialUrl", "description", "technologies"}

func draftFromRequest(r *http.Request) flash.Draft {
	d := make(flash.Draft, len(draftFields))
	for _, name := range draftFields {
		d[name] = r.FormValue(name)
	}
	return d
}

func (f FormData) WithDraft(d flash.Draft) FormData {
	if d == nil {
		return f
	}
	f.Title = d["title"]
	f.Issuer = d["issuer"]
	f.IssueDate = d["issueDate"]
	f.CredentialID = d["credentialId"]
	f.CredentialURL = d["credentialUrl"]
	f.Description = d["description"]
	f.Technologies = d["technologies"]
	return f
}

type EditPageData struct {
	Nav           nav.TopNavData
	CertificateID string
	Form          FormData
	Toasts        []flash.Toast
}
