package certificates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/frontend/shared/form"
	"portfolio/frontend/shared/nav"
	"portfolio/frontend/shared/respond"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/flash"
	"portfolio/models"
)

const (
	listBack   = "/admin?tab=certificates"
	lookupSize = 50
	lookupMax  = 20
)

var ErrCertificateNotFound = errors.New("certificate not found")

func inputFromRequest(r *http.Request) (backend.CertificateInput, error) {
	image, err := form.File(r, "image")
	if err != nil {
		return backend.CertificateInput{}, err
	}
	return backend.CertificateInput{
		Title:         form.Text(r, "title"),
		Issuer:        form.Text(r, "issuer"),
		IssueDate:     form.Text(r, "issueDate"),
		CredentialID:  form.Text(r, "credentialId"),
		CredentialURL: form.Text(r, "credentialUrl"),
		Description:   form.Text(r, "description"),
		Technologies:  backend.ParseTechnologies(r.FormValue("technologies")),
		Image:         image,
	}, nil
}

// FindCertificate walks the certificate listing until it meets id.
func FindCertificate(ctx context.Context, api AdminAPI, id string) (models.Certificate, error) {
	for page := 0; page < lookupMax; page++ {
		list, err := api.ListCertificates(ctx, page, lookupSize)
		if err != nil {
			return models.Certificate{}, err
		}
		for _, c := range list.Content {
			if c.ID.String() == id {
				return c, nil
			}
		}
		if !list.HasNext() {
			break
		}
	}
	return models.Certificate{}, fmt.Errorf("%w: %s", ErrCertificateNotFound, id)
}

func record(ctx context.Context, auditSvc *audit.Service, action, id string, before, after any) {
	if auditSvc == nil {
		return
	}
	if err := auditSvc.Record(ctx, sessioncontext.Username(ctx), action, audit.EntityCertificate, id, before, after); err != nil {
		slog.Error("write certificate audit failed", slog.String("action", action), slog.String("id", id), slog.Any("err", err))
	}
}

func CreateCertificateCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const failed = "Failed to add certificate. Please try again."
		if err := form.Parse(w, r); err != nil {
			respond.Fail(w, r, flashes, err, failed, listBack)
			return
		}
		fail := func(err error) {
			flashes.SaveDraft(w, r, NewDraft, draftFromRequest(r))
			respond.Fail(w, r, flashes, err, failed, listBack)
		}
		in, err := inputFromRequest(r)
		if err == nil {
			err = in.Validate()
		}
		if err != nil {
			fail(err)
			return
		}

		created, err := api.CreateCertificate(r.Context(), in)
		if err != nil {
			fail(err)
			return
		}
		record(r.Context(), auditSvc, audit.ActionCreate, created.ID.String(), nil, created)
		respond.Succeed(w, r, flashes, "Certificate added successfully", listBack)
	}
}

func EditCertificatePageQueryHandler(api AdminAPI, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		cert, err := FindCertificate(r.Context(), api, id)
		if err != nil {
			if errors.Is(err, ErrCertificateNotFound) {
				flashes.Add(w, r, flash.Error("Certificate not found."))
				http.Redirect(w, r, listBack, http.StatusSeeOther)
				return
			}
			respond.Fail(w, r, flashes, err, "Failed to load certificate. Please try again.", listBack)
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		data := EditPageData{
			Nav:           nav.BuildTopNavData(session, nav.TabCertificates),
			CertificateID: id,
			Form:          EditForm(cert).WithDraft(flashes.PopDraft(w, r, EditDraft(id))),
			Toasts:        flashes.Pop(w, r),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := EditCertificatePage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render certificate page", http.StatusInternalServerError)
			return
		}
	}
}

func UpdateCertificateCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const failed = "Failed to update certificate. Please try again."
		id := chi.URLParam(r, "id")
		back := "/admin/certificates/" + url.PathEscape(id) + "/edit"
		if err := form.Parse(w, r); err != nil {
			respond.Fail(w, r, flashes, err, failed, back)
			return
		}
		fail := func(err error) {
			flashes.SaveDraft(w, r, EditDraft(id), draftFromRequest(r))
			respond.Fail(w, r, flashes, err, failed, back)
		}
		in, err := inputFromRequest(r)
		if err == nil {
			err = in.Validate()
		}
		if err != nil {
			fail(err)
			return
		}

		before, err := FindCertificate(r.Context(), api, id)
		if err != nil && !errors.Is(err, ErrCertificateNotFound) {
			fail(err)
			return
		}
		updated, err := api.UpdateCertificate(r.Context(), id, in)
		if err != nil {
			fail(err)
			return
		}
		record(r.Context(), auditSvc, audit.ActionUpdate, id, before, updated)
		respond.Succeed(w, r, flashes, "Certificate updated successfully", listBack)
	}
}

func DeleteCertificateCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := api.DeleteCertificate(r.Context(), id); err != nil {
			respond.Fail(w, r, flashes, err, "Failed to delete certificate. Please try again.", listBack)
			return
		}
		record(r.Context(), auditSvc, audit.ActionDelete, id, map[string]any{"id": id}, nil)
		respond.Succeed(w, r, flashes, "Certificate deleted successfully", listBack)
	}
}
