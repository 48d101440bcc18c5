package backend

import (
	"bytes"
	"errors"
	"strings"

	"portfolio/models"
)

var (
	ErrNameRequired         = errors.New("name is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailInvalid         = errors.New("email must contain @")
	ErrMessageRequired      = errors.New("message is required")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrTitleRequired        = errors.New("title is required")
	ErrOverviewRequired     = errors.New("overview is required")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrTechnologiesRequired = errors.New("at least one technology is required")
	ErrStartDateRequired    = errors.New("start date is required")
	ErrIssuerRequired       = errors.New("issuer is required")
	ErrIssueDateRequired    = errors.New("issue date is required")
	ErrResumeRequired       = errors.New("resume file is required")
	ErrResumeTooLarge       = errors.New("resume must be 10 MB or smaller")
	ErrResumeNotPDF         = errors.New("resume must be a PDF")
)

// MaxResumeBytes is the largest resume upload accepted.
const MaxResumeBytes = 10 << 20

// IsValidation reports whether err is one of the required-field errors above.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrNameRequired, ErrEmailRequired, ErrEmailInvalid, ErrMessageRequired,
		ErrUsernameRequired, ErrPasswordRequired,
		ErrTitleRequired, ErrOverviewRequired, ErrDescriptionRequired, ErrTechnologiesRequired, ErrStartDateRequired,
		ErrIssuerRequired, ErrIssueDateRequired,
		ErrResumeRequired, ErrResumeTooLarge, ErrResumeNotPDF,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func ValidateContact(m models.ContactRequest) error {
	switch {
	case blank(m.Name):
		return ErrNameRequired
	case blank(m.Email):
		return ErrEmailRequired
	case !strings.Contains(m.Email, "@"):
		return ErrEmailInvalid
	case blank(m.Message):
		return ErrMessageRequired
	}
	return nil
}

func ValidateLogin(username, password string) error {
	if blank(username) {
		return ErrUsernameRequired
	}
	if blank(password) {
		return ErrPasswordRequired
	}
	return nil
}

// ParseTechnologies splits a comma separated list, dropping blanks.
func ParseTechnologies(raw string) []string {
	out := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ValidateResume checks an upload before it is sent.
func ValidateResume(data []byte) error {
	if len(data) == 0 {
		return ErrResumeRequired
	}
	if len(data) > MaxResumeBytes {
		return ErrResumeTooLarge
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return ErrResumeNotPDF
	}
	return nil
}
