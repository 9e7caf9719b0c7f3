package entities

import "time"

type AuditRecord struct {
	ID         int64     `db:"id"`
	DocumentID int64     `db:"document_id"`
	UserID     int64     `db:"user_id"`
	Action     string    `db:"action"`
	OriginIP   *string   `db:"origin_ip"`
	CreatedAt  time.Time `db:"created_at"`
}
