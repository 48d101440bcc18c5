package login

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"portfolio/infrastructure/argon"
	"portfolio/infrastructure/sqlite"
	"portfolio/models"
)

// persistSession seals the bearer token and inserts the session row.
func persistSession(ctx context.Context, db *sqlite.DB, sealer *argon.Sealer, session models.Session) error {
	sealed, err := sealer.Seal(session.Token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&models.Session{
			ID:          session.ID,
			Username:    session.Username,
			SealedToken: sealed,
			ExpiresAt:   session.ExpiresAt,
		}).Exec(ctx)
		return err
	})
}

func DeleteSessionByToken(ctx context.Context, db *sqlite.DB, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Session)(nil)).Where("id = ?", token).Exec(ctx)
		return err
	})
}

// LoadSessionByToken reads a session and unseals its bearer token. Expired
// or unreadable sessions are deleted and reported as sql.ErrNoRows.
func LoadSessionByToken(ctx context.Context, db *sqlite.DB, sealer *argon.Sealer, token string) (models.Session, error) {
	var session models.Session
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&session).
			Where("s.id = ?", token).
			Limit(1).
			Scan(ctx)
	})
	if err != nil {
		return models.Session{}, err
	}
	if session.Expired() {
		_ = DeleteSessionByToken(ctx, db, token)
		return models.Session{}, sql.ErrNoRows
	}
	plain, err := sealer.Open(session.SealedToken)
	if err != nil {
		_ = DeleteSessionByToken(ctx, db, token)
		return models.Session{}, sql.ErrNoRows
	}
	session.Token = plain
	return session, nil
}

// PurgeExpiredSessions removes sessions that expired before now.
func PurgeExpiredSessions(ctx context.Context, db *sqlite.DB, now time.Time) (int64, error) {
	var n int64
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*models.Session)(nil)).Where("expires_at < ?", now.UTC()).Exec(ctx)
		if err != nil {
			return err
		}
		n, _ = res.RowsAffected()
		return nil
	})
	return n, err
}
