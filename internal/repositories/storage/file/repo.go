package filerepo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"casevault/internal/models"

	uuid "github.com/satori/go.uuid"
)

const pkg = "fileRepo/"

const chunkSize = 8 * 1024

type repository struct {
	root string
}

// NewRepository returns a content store rooted at a private directory.
// Stored names are opaque and unique per upload; a file is written once
// and never rewritten under the same name.
func NewRepository(root string) *repository {
	return &repository{root: root}
}

func (r *repository) SaveFile(reader io.Reader, logicalName string) (*models.StoredFile, error) {
	op := pkg + "SaveFile"

	if reader == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	if err := os.MkdirAll(r.root, 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(logicalName)))
	storedName := strings.ReplaceAll(uuid.NewV4().String(), "-", "") + ext

	path := filepath.Join(r.root, storedName)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hasher := sha256.New()

	size, err := io.CopyBuffer(io.MultiWriter(dst, hasher), reader, make([]byte, chunkSize))
	if err != nil {
		dst.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.StoredFile{
		StoredName: storedName,
		Extension:  strings.TrimPrefix(ext, "."),
		SizeBytes:  size,
		Checksum:   hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Resolve maps a stored name to an absolute path inside the storage root.
// Names carrying any directory component are rejected outright, so
// traversal attempts resolve to not-found no matter what is on disk.
func (r *repository) Resolve(storedName string) (string, error) {
	op := pkg + "Resolve"

	name := strings.TrimSpace(storedName)
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%s: %w", op, models.ErrFileNotFound)
	}

	if name == "." || name == ".." {
		return "", fmt.Errorf("%s: %w", op, models.ErrFileNotFound)
	}

	root, err := filepath.Abs(r.root)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path := filepath.Join(root, name)
	if !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", op, models.ErrFileNotFound)
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%s: %w", op, models.ErrFileNotFound)
	}

	return path, nil
}

func (r *repository) Open(storedName string) (io.ReadCloser, error) {
	op := pkg + "Open"

	path, err := r.Resolve(storedName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		// The file can disappear between Resolve and Open when a
		// concurrent delete wins the race.
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrFileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

// DeleteFile removes the physical object. A missing file is not an
// error; callers treat any failure as non-fatal and proceed with
// metadata deletion.
func (r *repository) DeleteFile(storedName string) error {
	op := pkg + "DeleteFile"

	path, err := r.Resolve(storedName)
	if err != nil {
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Checksum computes the hex-encoded SHA-256 digest of an in-memory buffer.
func Checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ChecksumReader computes the digest of a stream in fixed-size chunks,
// rewinding the stream to its start afterwards when it is seekable.
func ChecksumReader(reader io.Reader) (string, error) {
	op := pkg + "ChecksumReader"

	if reader == nil {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	hasher := sha256.New()

	if _, err := io.CopyBuffer(hasher, reader, make([]byte, chunkSize)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if seeker, ok := reader.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
