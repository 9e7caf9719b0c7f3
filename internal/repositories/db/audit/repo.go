package auditrepo

import (
	"context"
	"fmt"

	"casevault/internal/entities"
	"casevault/internal/models"

	"github.com/jmoiron/sqlx"
)

const pkg = "auditRepo/"

const selectColumns = `
			a.id AS id,
			a.document_id AS document_id,
			a.user_id AS user_id,
			a.action AS action,
			a.origin_ip AS origin_ip,
			a.created_at AS created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// Append inserts one immutable audit row. There is no update or delete
// path anywhere in the application.
func (r *repository) Append(ctx context.Context, rec *models.AuditRecord) error {
	op := pkg + "Append"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_audit (document_id, user_id, action, origin_ip, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.DocumentID, rec.UserID, rec.Action, rec.OriginIP, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) ByDocument(ctx context.Context, documentID int64) ([]*models.AuditRecord, error) {
	op := pkg + "ByDocument"

	rawRecs := make([]entities.AuditRecord, 0)

	err := r.db.SelectContext(ctx, &rawRecs,
		`SELECT`+selectColumns+`
		FROM document_audit a
		WHERE a.document_id = $1
		ORDER BY a.created_at DESC, a.id DESC`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModels(rawRecs), nil
}

func (r *repository) Recent(ctx context.Context, limit int) ([]*models.AuditRecord, error) {
	op := pkg + "Recent"

	rawRecs := make([]entities.AuditRecord, 0)

	err := r.db.SelectContext(ctx, &rawRecs,
		`SELECT`+selectColumns+`
		FROM document_audit a
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModels(rawRecs), nil
}

func toModels(raw []entities.AuditRecord) []*models.AuditRecord {
	recs := make([]*models.AuditRecord, 0, len(raw))

	for i := range raw {
		recs = append(recs, &models.AuditRecord{
			ID:         raw[i].ID,
			DocumentID: raw[i].DocumentID,
			UserID:     raw[i].UserID,
			Action:     raw[i].Action,
			OriginIP:   raw[i].OriginIP,
			CreatedAt:  raw[i].CreatedAt,
		})
	}

	return recs
}
