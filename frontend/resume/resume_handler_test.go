package resume

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/infrastructure/backend"
)

type fakeAPI struct {
	doc       *backend.Document
	err       error
	uploads   []backend.Upload
	uploadErr error
}

func (f *fakeAPI) FetchResume(context.Context) (*backend.Document, error) { return f.doc, f.err }

func (f *fakeAPI) AdminFetchResume(context.Context) (*backend.Document, error) { return f.doc, f.err }

func (f *fakeAPI) UploadResume(_ context.Context, file backend.Upload) error {
	if err := backend.ValidateResume(file.Data); err != nil {
		return err
	}
	f.uploads = append(f.uploads, file)
	return f.uploadErr
}

func pdfDoc() *backend.Document {
	body := "%PDF-1.4 test"
	return &backend.Document{Body: io.NopCloser(strings.NewReader(body)), ContentType: "application/pdf", ContentLength: int64(len(body))}
}

func TestPublicDownloadStreamsAttachment(t *testing.T) {
	api := &fakeAPI{doc: pdfDoc()}
	rec := httptest.NewRecorder()
	DownloadResumeQueryHandler(api, "jane-doe.pdf", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resume", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename=jane-doe.pdf` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "%PDF-1.4 test" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestPublicDownloadFailureRedirects(t *testing.T) {
	api := &fakeAPI{err: errors.New("file host down")}
	rec := httptest.NewRecorder()
	DownloadResumeQueryHandler(api, "resume.pdf", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resume", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func multipartUpload(t *testing.T, name string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		part, err := mw.CreateFormFile("file", name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(data)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/admin/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadForwardsPDF(t *testing.T) {
	api := &fakeAPI{}
	rec := httptest.NewRecorder()
	UploadResumeCommandHandler(api, nil, nil).ServeHTTP(rec, multipartUpload(t, "../cv.pdf", []byte("%PDF-1.7 body")))

	if rec.Header().Get("Location") != adminBack {
		t.Fatalf("unexpected redirect %q", rec.Header().Get("Location"))
	}
	if len(api.uploads) != 1 || api.uploads[0].FileName != "cv.pdf" {
		t.Fatalf("unexpected uploads %+v", api.uploads)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	api := &fakeAPI{}
	rec := httptest.NewRecorder()
	UploadResumeCommandHandler(api, nil, nil).ServeHTTP(rec, multipartUpload(t, "cv.docx", []byte("PK\x03\x04")))
	if len(api.uploads) != 0 {
		t.Fatalf("non-pdf must not be uploaded")
	}
	if rec.Header().Get("Location") != adminBack {
		t.Fatalf("expected redirect back to resume tab")
	}
}

func TestUploadMissingFile(t *testing.T) {
	api := &fakeAPI{}
	rec := httptest.NewRecorder()
	UploadResumeCommandHandler(api, nil, nil).ServeHTTP(rec, multipartUpload(t, "", nil))
	if len(api.uploads) != 0 || rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect without upload")
	}
}
