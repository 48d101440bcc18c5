package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"portfolio/models"
)

// Login exchanges admin credentials for a bearer token. The backend expects
// the username in its "email" field.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if err := ValidateLogin(username, password); err != nil {
		return "", err
	}
	body, err := jsonBody(map[string]string{"email": strings.TrimSpace(username), "password": password})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	var out models.LoginResponse
	if err := c.doJSON(ctx, request{
		op: "login", method: http.MethodPost, path: "/admin/login", body: body, contentType: "application/json",
	}, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Token) == "" {
		return "", fmt.Errorf("login: %w", ErrUnauthorized)
	}
	return out.Token, nil
}

// Upload is an optional file attached to a multipart request.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ProjectInput is the admin project form.
type ProjectInput struct {
	Title        string
	Overview     string
	Description  string
	Technologies []string
	StartDate    string
	EndDate      string
	GitHubURL    string
	LiveURL      string
	IsTeamProj   bool
	Image        *Upload
}

func (p ProjectInput) Validate() error {
	switch {
	case blank(p.Title):
		return ErrTitleRequired
	case blank(p.Overview):
		return ErrOverviewRequired
	case blank(p.Description):
		return ErrDescriptionRequired
	case len(p.Technologies) == 0:
		return ErrTechnologiesRequired
	case blank(p.StartDate):
		return ErrStartDateRequired
	}
	return nil
}

func (p ProjectInput) fields() [][2]string {
	kind := models.ProjectTypeSolo
	if p.IsTeamProj {
		kind = models.ProjectTypeTeam
	}
	out := [][2]string{
		{"title", p.Title},
		{"overview", p.Overview},
		{"description", p.Description},
		{"startDate", p.StartDate},
		{"endDate", p.EndDate},
		{"githubUrl", p.GitHubURL},
		{"liveUrl", p.LiveURL},
		{"isTeamProj", strconv.FormatBool(p.IsTeamProj)},
		{"type", kind},
	}
	for _, t := range p.Technologies {
		out = append(out, [2]string{"technologies", t})
	}
	return out
}

// CertificateInput is the admin certificate form.
type CertificateInput struct {
	Title         string
	Issuer        string
	IssueDate     string
	CredentialID  string
	CredentialURL string
	Description   string
	Technologies  []string
	Image         *Upload
}

func (c CertificateInput) Validate() error {
	switch {
	case blank(c.Title):
		return ErrTitleRequired
	case blank(c.Issuer):
		return ErrIssuerRequired
	case blank(c.IssueDate):
		return ErrIssueDateRequired
	}
	return nil
}

func (c CertificateInput) fields() [][2]string {
	out := [][2]string{
		{"title", c.Title},
		{"issuer", c.Issuer},
		{"issueDate", c.IssueDate},
		{"credentialId", c.CredentialID},
		{"credentialUrl", c.CredentialURL},
		{"description", c.Description},
	}
	for _, t := range c.Technologies {
		out = append(out, [2]string{"technologies", t})
	}
	return out
}

// encodeMultipart writes fields in order, skipping empty values, then the
// optional file under fileField.
func encodeMultipart(fields [][2]string, fileField string, file *Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			continue
		}
		if err := mw.WriteField(f[0], strings.TrimSpace(f[1])); err != nil {
			return nil, "", err
		}
	}
	if file != nil && len(file.Data) > 0 {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.FileName))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func (c *Client) AdminListProjects(ctx context.Context, page, size int) (models.Page[models.Project], error) {
	var out models.Page[models.Project]
	err := c.doJSON(ctx, request{
		op: "fetch admin projects", method: http.MethodGet, path: "/admin/projects", query: pageQuery(page, size), auth: true,
	}, &out)
	return out, err
}

func (c *Client) saveProject(ctx context.Context, op, method, path string, in ProjectInput) (models.Project, error) {
	var out models.Project
	if err := in.Validate(); err != nil {
		return out, err
	}
	body, ct, err := encodeMultipart(in.fields(), "image", in.Image)
	if err != nil {
		return out, fmt.Errorf("%s: encode form: %w", op, err)
	}
	err = c.doJSON(ctx, request{op: op, method: method, path: path, body: body, contentType: ct, auth: true}, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (models.Project, error) {
	return c.saveProject(ctx, "create project", http.MethodPost, "/admin/projects", in)
}

func (c *Client) UpdateProject(ctx context.Context, id string, in ProjectInput) (models.Project, error) {
	return c.saveProject(ctx, "update project", http.MethodPut, "/admin/projects/"+url.PathEscape(id), in)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op: "delete project", method: http.MethodDelete, path: "/admin/projects/" + url.PathEscape(id), auth: true,
	}, nil)
}

// SetProjectPublished flips the public visibility of a project.
func (c *Client) SetProjectPublished(ctx context.Context, id string, published bool) error {
	q := url.Values{}
	q.Set("state", strconv.FormatBool(published))
	return c.doJSON(ctx, request{
		op: "toggle project publish status", method: http.MethodPatch,
		path: "/admin/projects/" + url.PathEscape(id) + "/publish", query: q, auth: true,
	}, nil)
}

func (c *Client) saveCertificate(ctx context.Context, op, method, path string, in CertificateInput) (models.Certificate, error) {
	var out models.Certificate
	if err := in.Validate(); err != nil {
		return out, err
	}
	body, ct, err := encodeMultipart(in.fields(), "image", in.Image)
	if err != nil {
		return out, fmt.Errorf("%s: encode form: %w", op, err)
	}
	err = c.doJSON(ctx, request{op: op, method: method, path: path, body: body, contentType: ct, auth: true}, &out)
	return out, err
}

func (c *Client) CreateCertificate(ctx context.Context, in CertificateInput) (models.Certificate, error) {
	return c.saveCertificate(ctx, "create certificate", http.MethodPost, "/admin/certificates", in)
}

func (c *Client) UpdateCertificate(ctx context.Context, id string, in CertificateInput) (models.Certificate, error) {
	return c.saveCertificate(ctx, "update certificate", http.MethodPut, "/admin/certificates/"+url.PathEscape(id), in)
}

func (c *Client) DeleteCertificate(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op: "delete certificate", method: http.MethodDelete, path: "/admin/certificates/" + url.PathEscape(id), auth: true,
	}, nil)
}

func (c *Client) ListMessages(ctx context.Context) (models.Page[models.ContactMessage], error) {
	var out models.Page[models.ContactMessage]
	err := c.doJSON(ctx, request{op: "fetch messages", method: http.MethodGet, path: "/admin/messages", auth: true}, &out)
	return out, err
}

func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op: "delete message", method: http.MethodDelete, path: "/admin/messages/" + url.PathEscape(id), auth: true,
	}, nil)
}

func (c *Client) MarkMessageRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op: "mark message as read", method: http.MethodPatch, path: "/admin/messages/" + url.PathEscape(id) + "/read", auth: true,
	}, nil)
}

// UnreadCount accepts a bare number or an object with a count field.
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, request{
		op: "fetch unread count", method: http.MethodGet, path: "/admin/messages/unread-count", auth: true,
	}, &raw); err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var obj struct {
		Count       *int64 `json:"count"`
		UnreadCount *int64 `json:"unreadCount"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return 0, fmt.Errorf("fetch unread count: decode response: %w", err)
	}
	switch {
	case obj.Count != nil:
		return *obj.Count, nil
	case obj.UnreadCount != nil:
		return *obj.UnreadCount, nil
	}
	return 0, nil
}

// UploadResume replaces the hosted resume. The file goes in the "file" part.
func (c *Client) UploadResume(ctx context.Context, file Upload) error {
	if err := ValidateResume(file.Data); err != nil {
		return err
	}
	if file.ContentType == "" {
		file.ContentType = "application/pdf"
	}
	body, ct, err := encodeMultipart(nil, "file", &file)
	if err != nil {
		return fmt.Errorf("upload resume: encode form: %w", err)
	}
	return c.doJSON(ctx, request{
		op: "upload resume", method: http.MethodPost, path: "/admin/resume", body: body, contentType: ct, auth: true,
	}, nil)
}

func (c *Client) AdminResumeURL(ctx context.Context) (string, error) {
	raw, err := c.doText(ctx, request{op: "fetch admin resume url", method: http.MethodGet, path: "/admin/resume", auth: true})
	if err != nil {
		return "", err
	}
	return checkFileURL(raw)
}

func (c *Client) AdminFetchResume(ctx context.Context) (*Document, error) {
	link, err := c.AdminResumeURL(ctx)
	if err != nil {
		return nil, err
	}
	return c.download(ctx, "download admin resume", link)
}
