package resume

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/frontend/shared/respond"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
)

const adminBack = "/admin?tab=resume"

type PublicAPI interface {
	FetchResume(ctx context.Context) (*backend.Document, error)
}

type AdminAPI interface {
	AdminFetchResume(ctx context.Context) (*backend.Document, error)
	UploadResume(ctx context.Context, file backend.Upload) error
}

func stream(w http.ResponseWriter, doc *backend.Document, fileName string) {
	defer doc.Body.Close()
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.Header().Set("Cache-Control", "no-store")
	if doc.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.ContentLength, 10))
	}
	if _, err := io.Copy(w, doc.Body); err != nil {
		slog.Error("stream resume failed", slog.Any("err", err))
	}
}

// DownloadResumeQueryHandler resolves the public resume link and streams the
// file back as an attachment.
func DownloadResumeQueryHandler(api PublicAPI, fileName string, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := api.FetchResume(r.Context())
		if err != nil {
			slog.Error("download resume failed", slog.Any("err", err))
			flashes.Add(w, r, flash.Error("Failed to download resume. Please try again."))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		stream(w, doc, fileName)
	}
}

func AdminDownloadResumeQueryHandler(api AdminAPI, fileName string, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := api.AdminFetchResume(r.Context())
		if err != nil {
			respond.Fail(w, r, flashes, err, "Failed to download resume. Please try again.", adminBack)
			return
		}
		stream(w, doc, fileName)
	}
}

// UploadResumeCommandHandler forwards a PDF of at most 10 MB to the backend.
func UploadResumeCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, backend.MaxResumeBytes+(1<<20))
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				respond.Fail(w, r, flashes, backend.ErrResumeTooLarge, "", adminBack)
				return
			}
			respond.Fail(w, r, flashes, backend.ErrResumeRequired, "", adminBack)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			respond.Fail(w, r, flashes, backend.ErrResumeRequired, "", adminBack)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, backend.MaxResumeBytes+1))
		if err != nil {
			respond.Fail(w, r, flashes, err, "Failed to upload resume. Please try again.", adminBack)
			return
		}
		upload := backend.Upload{
			FileName:    filepath.Base(header.Filename),
			ContentType: "application/pdf",
			Data:        data,
		}
		if err := api.UploadResume(r.Context(), upload); err != nil {
			respond.Fail(w, r, flashes, err, "Failed to upload resume. Please try again.", adminBack)
			return
		}

		if auditSvc != nil {
			after := map[string]any{"fileName": upload.FileName, "bytes": len(data)}
			if err := auditSvc.Record(r.Context(), sessioncontext.Username(r.Context()), audit.ActionUpload, audit.EntityResume, "", nil, after); err != nil {
				slog.Error("write resume audit failed", slog.Any("err", err))
			}
		}
		respond.Succeed(w, r, flashes, "Resume uploaded successfully", adminBack)
	}
}
