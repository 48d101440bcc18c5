package exports

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"portfolio/frontend/portfolio"
	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/frontend/shared/respond"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/flash"
)

const exportsBack = "/admin?tab=projects"

func recordExportRun(r *http.Request, auditSvc *audit.Service, entityType string, after any) {
	if auditSvc == nil {
		return
	}
	if err := auditSvc.Record(r.Context(), sessioncontext.Username(r.Context()), audit.ActionExport, entityType, "", nil, after); err != nil {
		slog.Error("record export run failed", slog.String("type", entityType), slog.Any("err", err))
	}
}

// PortfolioPDFQueryHandler streams the printable portfolio as an attachment.
func PortfolioPDFQueryHandler(src Source, profile portfolio.Profile, siteURL string, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const failed = "Failed to export portfolio. Please try again."
		doc, err := Collect(r.Context(), src, profile, siteURL, time.Now())
		if err != nil {
			respond.Fail(w, r, flashes, err, failed, exportsBack)
			return
		}
		pdfBytes, err := RenderPortfolioPDF(doc)
		if err != nil {
			respond.Fail(w, r, flashes, err, failed, exportsBack)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=portfolio.pdf")
		w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
		if _, err := w.Write(pdfBytes); err != nil {
			slog.Error("write portfolio pdf failed", slog.Any("err", err))
			return
		}
		recordExportRun(r, auditSvc, audit.EntityPortfolio, map[string]any{
			"projects":     len(doc.Projects),
			"certificates": len(doc.Certificates),
		})
	}
}

// MessagesCSVQueryHandler exports the contact inbox as CSV.
func MessagesCSVQueryHandler(src MessageSource, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := src.ListMessages(r.Context())
		if err != nil {
			respond.Fail(w, r, flashes, err, "Failed to export messages. Please try again.", "/admin?tab=messages")
			return
		}
		var buf bytes.Buffer
		if err := writeMessagesCSV(&buf, list.Content); err != nil {
			respond.Fail(w, r, flashes, err, "Failed to export messages. Please try again.", "/admin?tab=messages")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=messages.csv")
		if _, err := buf.WriteTo(w); err != nil {
			slog.Error("write messages csv failed", slog.Any("err", err))
			return
		}
		recordExportRun(r, auditSvc, audit.EntityMessage, map[string]any{"messages": len(list.Content)})
	}
}
