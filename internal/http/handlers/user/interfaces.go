package user

import (
	"context"

	"casevault/internal/models"
)

const pkg = "userHandler/"

type UserRegistrar interface {
	Register(ctx context.Context, req *models.User, password string, adminToken string) (int64, error)
}
