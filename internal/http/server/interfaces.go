package server

import (
	"context"
	"io"

	"casevault/internal/dto"
	"casevault/internal/models"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, requester *models.User, meta *dto.UploadMeta, content io.Reader, originIP *string) (*models.Document, error)
	DocumentByID(ctx context.Context, docID int64, requester *models.User) (*models.Document, error)
	DownloadDocument(ctx context.Context, docID int64, requester *models.User, originIP *string) (*models.Document, io.ReadCloser, error)
	ListDocuments(ctx context.Context, requester *models.User, filter models.DocumentFilter) ([]*models.Document, error)
	DeleteDocument(ctx context.Context, docID int64, requester *models.User, originIP *string) error
	AuditTrail(ctx context.Context, requester *models.User, documentID *int64) ([]*models.AuditRecord, error)
}

type AuthService interface {
	Register(ctx context.Context, req *models.User, password string, adminToken string) (int64, error)
	Login(ctx context.Context, username string, password string) (string, *models.User, error)
	UserByToken(ctx context.Context, key string) (*models.User, error)
	Verify(ctx context.Context, key string) (*models.User, float64, error)
	Logout(ctx context.Context, key string) error
	Renew(ctx context.Context, userID int64) (string, error)
}
