package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"portfolio/models"
)

func (c *Client) ListProjects(ctx context.Context, page, size int) (models.Page[models.Project], error) {
	var out models.Page[models.Project]
	err := c.doJSON(ctx, request{
		op: "fetch projects", method: http.MethodGet, path: "/api/projects", query: pageQuery(page, size),
	}, &out)
	return out, err
}

// ListProjectsByType lists team or solo projects.
func (c *Client) ListProjectsByType(ctx context.Context, kind string, page, size int) (models.Page[models.Project], error) {
	var out models.Page[models.Project]
	if kind != models.ProjectTypeTeam && kind != models.ProjectTypeSolo {
		return out, fmt.Errorf("fetch projects by type: unknown type %q", kind)
	}
	err := c.doJSON(ctx, request{
		op: "fetch projects by type", method: http.MethodGet, path: "/api/projects/type/" + kind, query: pageQuery(page, size),
	}, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	var out models.Project
	err := c.doJSON(ctx, request{
		op: "fetch project", method: http.MethodGet, path: "/api/projects/" + url.PathEscape(id),
	}, &out)
	return out, err
}

func (c *Client) ProjectTags(ctx context.Context) ([]string, error) {
	out := []string{}
	err := c.doJSON(ctx, request{op: "fetch project tags", method: http.MethodGet, path: "/api/projects/tags"}, &out)
	return out, err
}

func (c *Client) ListCertificates(ctx context.Context, page, size int) (models.Page[models.Certificate], error) {
	var out models.Page[models.Certificate]
	err := c.doJSON(ctx, request{
		op: "fetch certificates", method: http.MethodGet, path: "/api/certificate", query: pageQuery(page, size),
	}, &out)
	return out, err
}

// SubmitContact validates msg and posts it. Invalid input issues no request.
func (c *Client) SubmitContact(ctx context.Context, msg models.ContactRequest) error {
	if err := ValidateContact(msg); err != nil {
		return err
	}
	body, err := jsonBody(msg)
	if err != nil {
		return fmt.Errorf("submit contact form: %w", err)
	}
	return c.doJSON(ctx, request{
		op: "submit contact form", method: http.MethodPost, path: "/api/contact",
		body: body, contentType: "application/json",
	}, nil)
}

// Document is a downloaded file. Close Body when done.
type Document struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ResumeURL returns the hosted location of the public resume.
func (c *Client) ResumeURL(ctx context.Context) (string, error) {
	raw, err := c.doText(ctx, request{op: "fetch resume url", method: http.MethodGet, path: "/api/resume"})
	if err != nil {
		return "", err
	}
	return checkFileURL(raw)
}

// FetchResume resolves the resume URL and downloads it.
func (c *Client) FetchResume(ctx context.Context) (*Document, error) {
	link, err := c.ResumeURL(ctx)
	if err != nil {
		return nil, err
	}
	return c.download(ctx, "download resume", link)
}

// download follows a file host link. No credential is sent to the file host.
func (c *Client) download(ctx context.Context, op, link string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode}
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/pdf"
	}
	return &Document{Body: resp.Body, ContentType: ct, ContentLength: resp.ContentLength}, nil
}

func checkFileURL(raw string) (string, error) {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u.String(), nil
}
