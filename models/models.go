package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

const (
	ProjectTypeTeam = "team"
	ProjectTypeSolo = "solo"
)

// Session is the local record behind the admin session cookie.
// The backend bearer token is only persisted in sealed form.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID          string    `bun:"id,pk"`
	Username    string    `bun:"username,notnull"`
	SealedToken string    `bun:"sealed_token,notnull"`
	Token       string    `bun:"-"`
	ExpiresAt   time.Time `bun:"expires_at,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AuditLog captures admin mutations issued through this site.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Username   string    `bun:"username,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ID is a backend identifier; the backend may send numbers or strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Project mirrors the backend project payload.
type Project struct {
	ID           ID       `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview,omitempty"`
	Description  string   `json:"description"`
	Type         string   `json:"type,omitempty"`
	IsTeamProj   bool     `json:"isTeamProj,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	GitHubURL    string   `json:"githubUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Published    bool     `json:"published,omitempty"`
	Date         string   `json:"date,omitempty"`
}

// Kind reports team or solo, falling back to the isTeamProj flag.
func (p Project) Kind() string {
	switch strings.ToLower(strings.TrimSpace(p.Type)) {
	case ProjectTypeTeam:
		return ProjectTypeTeam
	case ProjectTypeSolo:
		return ProjectTypeSolo
	}
	if p.IsTeamProj {
		return ProjectTypeTeam
	}
	return ProjectTypeSolo
}

// HasTechnology reports whether the project lists tag, ignoring case.
func (p Project) HasTechnology(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, t := range p.Technologies {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// Certificate mirrors the backend certificate payload.
type Certificate struct {
	ID            ID       `json:"id"`
	Title         string   `json:"title"`
	Issuer        string   `json:"issuer"`
	IssueDate     string   `json:"issueDate"`
	CredentialID  string   `json:"credentialId,omitempty"`
	CredentialURL string   `json:"credentialUrl,omitempty"`
	Description   string   `json:"description,omitempty"`
	Technologies  []string `json:"technologies,omitempty"`
}

// ContactMessage is a contact form submission as listed to admins.
type ContactMessage struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
	Read    bool   `json:"read,omitempty"`
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// LoginResponse is returned by the backend admin login.
type LoginResponse struct {
	Token string `json:"token"`
}

// Page is a paginated listing. Listing endpoints answer either with a page
// object or with a bare array; both decode here.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

type pageJSON[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*p = Page[T]{
			Content:       items,
			Size:          len(items),
			TotalPages:    1,
			TotalElements: int64(len(items)),
		}
		return nil
	}
	var out pageJSON[T]
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*p = Page[T](out)
	if p.Content == nil {
		p.Content = []T{}
	}
	return nil
}

// HasNext reports whether another page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages
}

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool {
	return p.Number > 0
}
