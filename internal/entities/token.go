package entities

import "time"

type SessionToken struct {
	Key          string    `db:"key"`
	UserID       int64     `db:"user_id"`
	CreatedAt    time.Time `db:"created_at"`
	LastActivity time.Time `db:"last_activity"`
}
