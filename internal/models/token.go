package models

import "time"

// SessionToken is a server-side bearer credential with a sliding idle
// window: expiry is measured from LastActivity, not CreatedAt.
type SessionToken struct {
	Key          string    `json:"-"`
	UserID       int64     `json:"usuario"`
	CreatedAt    time.Time `json:"fecha_creacion"`
	LastActivity time.Time `json:"ultima_actividad"`
}
