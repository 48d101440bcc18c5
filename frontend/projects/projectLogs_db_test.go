package projects

import (
	"context"
	"testing"

	"github.com/uptrace/bun"
)

func TestLoadProjectLogsPageData_FiltersProjectScopedEvents(t *testing.T) {
	db := openTestDB(t)

	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO audit_logs (username, action, entity_type, entity_id, before_json, after_json, created_at)
VALUES
('admin', 'create', 'project', '1', '', '{"id":"1","title":"Project One"}', DATETIME('now', '-5 minutes')),
('admin', 'publish', 'project', '1', '{"published":false}', '{"published":true}', DATETIME('now', '-4 minutes')),
('admin', 'update', 'project', '', '{"id":1,"title":"Project One"}', '', DATETIME('now', '-3 minutes')),
('admin', 'create', 'certificate', '1', '', '{"id":"1","title":"CKA"}', DATETIME('now', '-2 minutes')),
('', 'delete', 'project', '2', '{"id":"2"}', '', DATETIME('now', '-1 minutes'))`)
		return err
	})
	if err != nil {
		t.Fatalf("seed data: %v", err)
	}

	data, err := LoadProjectLogsPageData(context.Background(), db, "1")
	if err != nil {
		t.Fatalf("load project logs: %v", err)
	}

	if data.ProjectID != "1" {
		t.Fatalf("expected project_id=1, got %q", data.ProjectID)
	}
	if data.ProjectTitle != "Project One" {
		t.Fatalf("expected project title Project One, got %q", data.ProjectTitle)
	}
	if len(data.Rows) != 3 {
		t.Fatalf("expected 3 project-scoped logs, got %d", len(data.Rows))
	}
	if data.Rows[0].Action != "update" {
		t.Fatalf("expected newest first, got %q", data.Rows[0].Action)
	}
	for _, row := range data.Rows {
		if row.EntityType != "project" {
			t.Fatalf("unexpected %s log in project results", row.EntityType)
		}
	}

	other, err := LoadProjectLogsPageData(context.Background(), db, "2")
	if err != nil {
		t.Fatalf("load project logs: %v", err)
	}
	if len(other.Rows) != 1 || other.Rows[0].Actor != "-" {
		t.Fatalf("unexpected rows for project 2: %+v", other.Rows)
	}
}

func TestLoadProjectLogsPageData_UnknownProjectIsEmpty(t *testing.T) {
	db := openTestDB(t)
	data, err := LoadProjectLogsPageData(context.Background(), db, "missing")
	if err != nil {
		t.Fatalf("load project logs: %v", err)
	}
	if data.ProjectTitle != "" || len(data.Rows) != 0 {
		t.Fatalf("expected empty page data, got %+v", data)
	}
}
