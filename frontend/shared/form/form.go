package form

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"portfolio/infrastructure/backend"
)

// MaxUploadBytes bounds admin form bodies, image included.
const MaxUploadBytes = 12 << 20

// MaxMemory is how much of a multipart body stays in memory; larger file
// parts spool to temp files.
const MaxMemory = 1 << 20

// Parse reads an admin form body. Multipart and urlencoded bodies are both
// accepted.
func Parse(w http.ResponseWriter, r *http.Request) error {
	if r.MultipartForm == nil && r.PostForm == nil {
		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	}
	err := r.ParseMultipartForm(MaxMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

// Text returns the trimmed value of a field.
func Text(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// Checkbox reports whether a checkbox field was ticked.
func Checkbox(r *http.Request, name string) bool {
	switch strings.ToLower(Text(r, name)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// File returns the uploaded file under name, or nil when none was chosen.
func File(r *http.Request, name string) (*backend.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &backend.Upload{
		FileName:    filepath.Base(header.Filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}
