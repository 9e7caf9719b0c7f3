package documentservice

import (
	"context"
	"io"

	"casevault/internal/models"
)

type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *models.Document) (int64, error)
	DocumentByID(ctx context.Context, id int64) (*models.Document, error)
	Delete(ctx context.Context, id int64) error
	FilteredDocuments(ctx context.Context, filter models.DocumentFilter) ([]*models.Document, error)
}

type FileStorage interface {
	SaveFile(reader io.Reader, logicalName string) (*models.StoredFile, error)
	Open(storedName string) (io.ReadCloser, error)
	DeleteFile(storedName string) error
}

type AccessPolicy interface {
	CanAccess(ctx context.Context, requesterID int64, doc *models.Document) (bool, error)
	IsPrivileged(ctx context.Context, requesterID int64) (bool, error)
}

type AuditRecorder interface {
	Append(ctx context.Context, rec *models.AuditRecord) error
	ByDocument(ctx context.Context, documentID int64) ([]*models.AuditRecord, error)
	Recent(ctx context.Context, limit int) ([]*models.AuditRecord, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}) error
	Del(ctx context.Context, keys ...string) error
}
