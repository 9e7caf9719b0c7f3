package docs

import (
	"context"
	"io"

	"casevault/internal/dto"
	"casevault/internal/models"
)

const pkg = "docsHandler/"

type DocumentUploader interface {
	UploadDocument(ctx context.Context, requester *models.User, meta *dto.UploadMeta, content io.Reader, originIP *string) (*models.Document, error)
}

type DocumentProvider interface {
	ListDocuments(ctx context.Context, requester *models.User, filter models.DocumentFilter) ([]*models.Document, error)
	DocumentByID(ctx context.Context, docID int64, requester *models.User) (*models.Document, error)
}

type DocumentDownloader interface {
	DownloadDocument(ctx context.Context, docID int64, requester *models.User, originIP *string) (*models.Document, io.ReadCloser, error)
}

type DocumentDeleter interface {
	DeleteDocument(ctx context.Context, docID int64, requester *models.User, originIP *string) error
}
