package accessservice

import (
	"context"

	"casevault/internal/models"
)

type UserProvider interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

type CaseProvider interface {
	CaseByID(ctx context.Context, id int64) (*models.Case, error)
}
