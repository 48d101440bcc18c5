package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	DefaultTimeout = 10 * time.Second
	// maxErrorBody caps how much of an error body ends up in StatusError.
	maxErrorBody = 512
)

// Client talks to the portfolio REST backend. Nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for baseURL. A zero timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	auth        bool
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues one request and returns the response only for 2xx answers.
// The caller closes the body.
func (c *Client) do(ctx context.Context, in request) (*http.Response, error) {
	var token string
	if in.auth {
		var ok bool
		if token, ok = CredentialFromContext(ctx); !ok {
			return nil, fmt.Errorf("%s: %w", in.op, ErrNoCredential)
		}
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.endpoint(in.path, in.query), in.body)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", in.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	if in.contentType != "" {
		req.Header.Set("Content-Type", in.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("backend request failed", slog.String("op", in.op), slog.String("path", in.path), slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", in.op, err)
	}
	slog.Debug("backend request",
		slog.String("op", in.op),
		slog.String("method", in.method),
		slog.String("path", in.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Op: in.op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

// doJSON runs the request and decodes a JSON answer into out when out is
// non-nil. Empty bodies leave out untouched.
func (c *Client) doJSON(ctx context.Context, in request, out any) error {
	resp, err := c.do(ctx, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", in.op, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", in.op, err)
	}
	return nil
}

func (c *Client) doText(ctx context.Context, in request) (string, error) {
	resp, err := c.do(ctx, in)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read response: %w", in.op, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

func pageQuery(page, size int) url.Values {
	if page < 0 {
		page = 0
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return q
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
