package audit

import (
	"context"

	"casevault/internal/models"
)

const pkg = "auditHandler/"

type AuditProvider interface {
	AuditTrail(ctx context.Context, requester *models.User, documentID *int64) ([]*models.AuditRecord, error)
}
