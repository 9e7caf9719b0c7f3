package storage

import (
	"io"

	"casevault/internal/models"
)

type FileRepository interface {
	SaveFile(reader io.Reader, logicalName string) (*models.StoredFile, error)
	Resolve(storedName string) (string, error)
	Open(storedName string) (io.ReadCloser, error)
	DeleteFile(storedName string) error
}
