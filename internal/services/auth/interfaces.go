package authservice

import (
	"context"
	"time"

	"casevault/internal/models"
)

type UserAdder interface {
	AddUser(ctx context.Context, user *models.User) (int64, error)
}

type UserProvider interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

type TokenRepository interface {
	TokenByKey(ctx context.Context, key string) (*models.SessionToken, error)
	SaveToken(ctx context.Context, token *models.SessionToken) error
	UpdateActivity(ctx context.Context, key string, at time.Time) error
	DeleteToken(ctx context.Context, key string) error
	DeleteUserTokens(ctx context.Context, userID int64) error
}
