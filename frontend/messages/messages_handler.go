package messages

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/frontend/shared/respond"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/flash"
)

const listBack = "/admin?tab=messages"

type AdminAPI interface {
	MarkMessageRead(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error
}

func record(ctx context.Context, auditSvc *audit.Service, action, id string, before, after any) {
	if auditSvc == nil {
		return
	}
	if err := auditSvc.Record(ctx, sessioncontext.Username(ctx), action, audit.EntityMessage, id, before, after); err != nil {
		slog.Error("write message audit failed", slog.String("action", action), slog.String("id", id), slog.Any("err", err))
	}
}

func MarkReadCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := api.MarkMessageRead(r.Context(), id); err != nil {
			respond.Fail(w, r, flashes, err, "Failed to mark message as read. Please try again.", listBack)
			return
		}
		record(r.Context(), auditSvc, audit.ActionRead, id, map[string]any{"read": false}, map[string]any{"read": true})
		respond.Succeed(w, r, flashes, "Message marked as read", listBack)
	}
}

func DeleteMessageCommandHandler(api AdminAPI, auditSvc *audit.Service, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := api.DeleteMessage(r.Context(), id); err != nil {
			respond.Fail(w, r, flashes, err, "Failed to delete message. Please try again.", listBack)
			return
		}
		record(r.Context(), auditSvc, audit.ActionDelete, id, map[string]any{"id": id}, nil)
		respond.Succeed(w, r, flashes, "Message deleted successfully", listBack)
	}
}
