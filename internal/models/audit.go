package models

import "time"

// Audit actions. Records are append-only; nothing updates or deletes them.
const (
	AuditActionUpload   = "UPLOAD"
	AuditActionDownload = "DOWNLOAD"
	AuditActionDelete   = "DELETE"
)

type AuditRecord struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"documento"`
	UserID     int64     `json:"usuario"`
	Action     string    `json:"accion"`
	OriginIP   *string   `json:"ip_origen,omitempty"`
	CreatedAt  time.Time `json:"fecha"`
}
