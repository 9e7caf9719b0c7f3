package userservice

import (
	"context"

	"casevault/internal/models"
)

type UserAdder interface {
	AddUser(ctx context.Context, user *models.User) (int64, error)
}

type UserProvider interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}
