package projects

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/sqlite"
)

// LoadProjectLogsPageData lists the local audit history of one backend
// project, newest first. The title comes from the latest recorded payload.
func LoadProjectLogsPageData(ctx context.Context, db *sqlite.DB, projectID string) (ProjectLogsPageData, error) {
	data := ProjectLogsPageData{
		ProjectID: projectID,
		Rows:      make([]ProjectLogRow, 0),
	}

	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewRaw(`
SELECT title FROM (
	SELECT
		COALESCE(
			CASE WHEN json_valid(al.after_json) = 1 THEN json_extract(al.after_json, '$.title') END,
			CASE WHEN json_valid(al.before_json) = 1 THEN json_extract(al.before_json, '$.title') END
		) AS title,
		al.created_at,
		al.id
	FROM audit_logs al
	WHERE al.entity_type = ? AND al.entity_id = ?
)
WHERE title IS NOT NULL AND title <> ''
ORDER BY created_at DESC, id DESC
LIMIT 1`, audit.EntityProject, projectID).Scan(ctx, &data.ProjectTitle)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		type row struct {
			CreatedAtUK string `bun:"created_at_uk"`
			Actor       string `bun:"actor"`
			Action      string `bun:"action"`
			EntityType  string `bun:"entity_type"`
			EntityID    string `bun:"entity_id"`
			BeforeJSON  string `bun:"before_json"`
			AfterJSON   string `bun:"after_json"`
		}
		rows := make([]row, 0)
		if err := tx.NewRaw(`
SELECT
	COALESCE(strftime('%d/%m/%Y %H:%M', al.created_at), '') AS created_at_uk,
	al.username AS actor,
	al.action,
	al.entity_type,
	al.entity_id,
	COALESCE(al.before_json, '') AS before_json,
	COALESCE(al.after_json, '') AS after_json
FROM audit_logs al
WHERE
	(al.entity_type = ? AND al.entity_id = ?)
	OR (al.entity_type = ? AND al.entity_id = '' AND (
		CASE WHEN json_valid(al.before_json) = 1 THEN CAST(json_extract(al.before_json, '$.id') AS TEXT) END = ?
		OR CASE WHEN json_valid(al.after_json) = 1 THEN CAST(json_extract(al.after_json, '$.id') AS TEXT) END = ?
	))
ORDER BY al.created_at DESC, al.id DESC`,
			audit.EntityProject, projectID, audit.EntityProject, projectID, projectID,
		).Scan(ctx, &rows); err != nil {
			return err
		}

		for _, row := range rows {
			data.Rows = append(data.Rows, ProjectLogRow{
				CreatedAtUK: strings.TrimSpace(row.CreatedAtUK),
				Actor:       defaultActor(row.Actor),
				Action:      strings.TrimSpace(row.Action),
				EntityType:  strings.TrimSpace(row.EntityType),
				EntityID:    strings.TrimSpace(row.EntityID),
				BeforeJSON:  strings.TrimSpace(row.BeforeJSON),
				AfterJSON:   strings.TrimSpace(row.AfterJSON),
			})
		}
		return nil
	})
	return data, err
}

func defaultActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "-"
	}
	return actor
}
