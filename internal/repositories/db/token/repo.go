package tokenrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"casevault/internal/entities"
	"casevault/internal/models"

	"github.com/jmoiron/sqlx"
)

const pkg = "tokenRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) TokenByKey(ctx context.Context, key string) (*models.SessionToken, error) {
	op := pkg + "TokenByKey"

	rawToken := entities.SessionToken{}

	err := r.db.GetContext(ctx, &rawToken,
		`SELECT
			t.key AS key,
			t.user_id AS user_id,
			t.created_at AS created_at,
			t.last_activity AS last_activity
		FROM session_tokens t
		WHERE t.key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.SessionToken{
		Key:          rawToken.Key,
		UserID:       rawToken.UserID,
		CreatedAt:    rawToken.CreatedAt,
		LastActivity: rawToken.LastActivity,
	}, nil
}

func (r *repository) SaveToken(ctx context.Context, token *models.SessionToken) error {
	op := pkg + "SaveToken"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_tokens (key, user_id, created_at, last_activity)
		VALUES ($1, $2, $3, $4)`,
		token.Key, token.UserID, token.CreatedAt, token.LastActivity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateActivity refreshes the sliding idle window. Concurrent refreshes
// of the same key are last-write-wins; that only moves expiry timing.
func (r *repository) UpdateActivity(ctx context.Context, key string, at time.Time) error {
	op := pkg + "UpdateActivity"

	_, err := r.db.ExecContext(ctx,
		`UPDATE session_tokens SET last_activity = $2 WHERE key = $1`,
		key, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) DeleteToken(ctx context.Context, key string) error {
	op := pkg + "DeleteToken"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE key = $1`,
		key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrSessionNotFound)
	}

	return nil
}

// DeleteUserTokens removes every token bound to a user, enforcing the
// single-session-per-user invariant at login and renewal.
func (r *repository) DeleteUserTokens(ctx context.Context, userID int64) error {
	op := pkg + "DeleteUserTokens"

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE user_id = $1`,
		userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
