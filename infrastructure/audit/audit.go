package audit

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	"portfolio/infrastructure/sqlite"
	"portfolio/models"
)

const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionPublish = "publish"
	ActionRead    = "mark_read"
	ActionUpload  = "upload"
	ActionLogin   = "login"
	ActionLogout  = "logout"
	ActionExport  = "export"
)

// Entity types written by the admin handlers.
const (
	EntityProject     = "project"
	EntityCertificate = "certificate"
	EntityMessage     = "message"
	EntityResume      = "resume"
	EntitySession     = "session"
	EntityPortfolio   = "portfolio"
)

// Service records admin mutations sent to the backend.
type Service struct {
	db *sqlite.DB
}

func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Write stores one entry inside the caller transaction.
func (s *Service) Write(ctx context.Context, tx bun.Tx, username, action, entityType, entityID string, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return err
	}
	log := &models.AuditLog{
		Username:   username,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
	}
	_, err = tx.NewInsert().Model(log).Exec(ctx)
	return err
}

// Record writes one entry in its own transaction.
func (s *Service) Record(ctx context.Context, username, action, entityType, entityID string, before, after any) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return s.Write(ctx, tx, username, action, entityType, entityID, before, after)
	})
}

// Recent returns the newest entries first.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	logs := []models.AuditLog{}
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&logs).
			OrderExpr("al.created_at DESC, al.id DESC").
			Limit(limit).
			Scan(ctx)
	})
	return logs, err
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
