package session

import (
	"context"

	"casevault/internal/models"
)

const pkg = "sessionHandler/"

type SessionCreator interface {
	Login(ctx context.Context, username string, password string) (string, *models.User, error)
}

type SessionDeleter interface {
	Logout(ctx context.Context, key string) error
}

type SessionVerifier interface {
	Verify(ctx context.Context, key string) (*models.User, float64, error)
}

type SessionRenewer interface {
	Renew(ctx context.Context, userID int64) (string, error)
}
