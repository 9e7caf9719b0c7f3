package middleware

import (
	"context"

	"casevault/internal/models"
)

const pkg = "middleware/"

type Authenticator interface {
	UserByToken(ctx context.Context, key string) (*models.User, error)
}
