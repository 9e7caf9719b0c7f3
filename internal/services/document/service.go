package documentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"casevault/internal/dto"
	"casevault/internal/models"
)

const pkg = "documentService/"

const defaultAuditLimit = 100

// DocumentService orchestrates the document lifecycle: content store
// write, metadata row, policy check and mandatory audit entry. An audit
// write failure aborts the surrounding operation.
type DocumentService struct {
	log         *slog.Logger
	docRepo     DocumentRepository
	cache       Cache
	fileStorage FileStorage
	access      AccessPolicy
	audit       AuditRecorder
	now         func() time.Time
}

func New(
	log *slog.Logger,
	docRepo DocumentRepository,
	cache Cache,
	fileStorage FileStorage,
	access AccessPolicy,
	audit AuditRecorder,
) *DocumentService {
	return &DocumentService{
		log:         log,
		docRepo:     docRepo,
		cache:       cache,
		fileStorage: fileStorage,
		access:      access,
		audit:       audit,
		now:         time.Now,
	}
}

// UploadDocument stores the payload, persists metadata and records the
// UPLOAD audit entry. The physical write and the metadata row are two
// separate steps; on a later failure the earlier ones are rolled back
// best-effort.
func (ds *DocumentService) UploadDocument(ctx context.Context, requester *models.User, meta *dto.UploadMeta, content io.Reader, originIP *string) (*models.Document, error) {
	op := pkg + "UploadDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to upload document", slog.String("name", meta.Name))

	if content == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	stored, err := ds.fileStorage.SaveFile(content, meta.Name)
	if err != nil {
		if errors.Is(err, models.ErrInvalidParams) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
		}
		log.Error("failed to save file", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	doc := &models.Document{
		CaseID:      meta.CaseID,
		EmployeeID:  meta.EmployeeID,
		FolderID:    meta.FolderID,
		CreatorID:   &requester.ID,
		Name:        meta.Name,
		Type:        meta.Type,
		Description: meta.Description,
		Sensitivity: models.NormalizeSensitivity(meta.Sensitivity),
		StoredName:  stored.StoredName,
		Extension:   stored.Extension,
		SizeBytes:   stored.SizeBytes,
		Checksum:    stored.Checksum,
		CreatedAt:   ds.now(),
	}
	doc.UpdatedAt = doc.CreatedAt

	id, err := ds.docRepo.CreateDocument(ctx, doc)
	if err != nil {
		log.Error("failed to save document metadata", slog.String("error", err.Error()))
		ds.removeFile(log, stored.StoredName)
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	doc.ID = id

	if err := ds.recordAudit(ctx, models.AuditActionUpload, doc.ID, requester.ID, originIP); err != nil {
		log.Error("failed to record upload audit", slog.String("error", err.Error()))
		if derr := ds.docRepo.Delete(ctx, doc.ID); derr != nil {
			log.Error("failed to roll back document metadata", slog.String("error", derr.Error()))
		}
		ds.removeFile(log, stored.StoredName)
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("document uploaded successfully", slog.Int64("doc_id", doc.ID), slog.Int64("creator_id", requester.ID))

	return doc, nil
}

// DocumentByID returns metadata after the policy check.
func (ds *DocumentService) DocumentByID(ctx context.Context, docID int64, requester *models.User) (*models.Document, error) {
	op := pkg + "DocumentByID"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to get document by id", slog.Int64("doc_id", docID), slog.Int64("user_id", requester.ID))

	doc, err := ds.documentMetaByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	allowed, err := ds.access.CanAccess(ctx, requester.ID, doc)
	if err != nil {
		return nil, models.ErrInternal
	}

	if !allowed {
		log.Warn("user doesn't have access for document", slog.Int64("doc_id", docID), slog.Int64("user_id", requester.ID))
		return nil, models.ErrForbidden
	}

	return doc, nil
}

// DownloadDocument resolves the physical object and records the
// DOWNLOAD audit entry before handing back the stream. The returned
// filename is the logical name plus stored extension.
func (ds *DocumentService) DownloadDocument(ctx context.Context, docID int64, requester *models.User, originIP *string) (*models.Document, io.ReadCloser, error) {
	op := pkg + "DownloadDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to download document", slog.Int64("doc_id", docID), slog.Int64("user_id", requester.ID))

	doc, err := ds.DocumentByID(ctx, docID, requester)
	if err != nil {
		return nil, nil, err
	}

	file, err := ds.fileStorage.Open(doc.StoredName)
	if err != nil {
		if errors.Is(err, models.ErrFileNotFound) {
			log.Warn("physical file missing", slog.Int64("doc_id", docID), slog.String("stored_name", doc.StoredName))
			return nil, nil, models.ErrFileNotFound
		}
		log.Error("failed to open file", slog.String("error", err.Error()))
		return nil, nil, models.ErrInternal
	}

	if err := ds.recordAudit(ctx, models.AuditActionDownload, doc.ID, requester.ID, originIP); err != nil {
		log.Error("failed to record download audit", slog.String("error", err.Error()))
		file.Close()
		return nil, nil, models.ErrInternal
	}

	log.Debug("document ready for download", slog.Int64("doc_id", docID))

	return doc, file, nil
}

// ListDocuments filters by the query and then by policy; items the
// requester may not access are silently excluded, never an error.
func (ds *DocumentService) ListDocuments(ctx context.Context, requester *models.User, filter models.DocumentFilter) ([]*models.Document, error) {
	op := pkg + "ListDocuments"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to list documents", slog.Int64("requester_id", requester.ID))

	docs, err := ds.docRepo.FilteredDocuments(ctx, filter)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			return nil, nil
		}
		log.Error("failed to list documents", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	visible := make([]*models.Document, 0, len(docs))

	for _, doc := range docs {
		allowed, err := ds.access.CanAccess(ctx, requester.ID, doc)
		if err != nil {
			log.Error("failed to evaluate access", slog.String("error", err.Error()), slog.Int64("doc_id", doc.ID))
			return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
		if allowed {
			visible = append(visible, doc)
		}
	}

	log.Debug("documents listed successfully", slog.Int("count", len(visible)), slog.Int64("requester_id", requester.ID))

	return visible, nil
}

// DeleteDocument removes a document. Ordering is fixed so the audit
// trail survives a partial failure: audit entry, then physical file
// (best-effort), then metadata row.
func (ds *DocumentService) DeleteDocument(ctx context.Context, docID int64, requester *models.User, originIP *string) error {
	op := pkg + "DeleteDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to delete document", slog.Int64("doc_id", docID), slog.Int64("user_id", requester.ID))

	doc, err := ds.documentMetaByID(ctx, docID)
	if err != nil {
		return err
	}

	allowed, err := ds.access.CanAccess(ctx, requester.ID, doc)
	if err != nil {
		return models.ErrInternal
	}

	if !allowed {
		log.Warn("user doesn't have access for delete operation", slog.Int64("doc_id", docID), slog.Int64("user_id", requester.ID))
		return models.ErrForbidden
	}

	if err := ds.recordAudit(ctx, models.AuditActionDelete, doc.ID, requester.ID, originIP); err != nil {
		log.Error("failed to record delete audit", slog.String("error", err.Error()))
		return models.ErrInternal
	}

	// Physical removal is best-effort; orphaned metadata would be worse
	// than an orphaned file, so the row goes regardless.
	if err := ds.fileStorage.DeleteFile(doc.StoredName); err != nil {
		log.Warn("failed to delete document content", slog.String("error", err.Error()), slog.String("stored_name", doc.StoredName))
	}

	if err := ds.docRepo.Delete(ctx, docID); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document meta already gone", slog.Int64("doc_id", docID))
		} else {
			log.Error("failed to delete document meta", slog.String("error", err.Error()))
			return models.ErrInternal
		}
	}

	if err := ds.cache.Del(ctx, docCacheKey(docID)); err != nil {
		log.Error("failed to delete doc from cache", slog.String("error", err.Error()))
	}

	log.Debug("document deleted successfully", slog.Int64("doc_id", docID), slog.Int64("user_id", requester.ID))

	return nil
}

// AuditTrail lists audit records newest-first, for privileged roles only.
func (ds *DocumentService) AuditTrail(ctx context.Context, requester *models.User, documentID *int64) ([]*models.AuditRecord, error) {
	op := pkg + "AuditTrail"

	log := ds.log.With(slog.String("op", op))

	privileged, err := ds.access.IsPrivileged(ctx, requester.ID)
	if err != nil {
		log.Error("failed to evaluate role", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if !privileged {
		log.Warn("non-privileged user requested audit trail", slog.Int64("user_id", requester.ID))
		return nil, models.ErrForbidden
	}

	var recs []*models.AuditRecord

	if documentID != nil {
		recs, err = ds.audit.ByDocument(ctx, *documentID)
	} else {
		recs, err = ds.audit.Recent(ctx, defaultAuditLimit)
	}
	if err != nil {
		log.Error("failed to list audit records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return recs, nil
}

func (ds *DocumentService) documentMetaByID(ctx context.Context, docID int64) (*models.Document, error) {
	op := pkg + "documentMetaByID"

	log := ds.log.With(slog.String("op", op))

	key := docCacheKey(docID)

	docJSON, err := ds.cache.Get(ctx, key)
	if err == nil && docJSON != "" {
		var doc models.Document
		if err := json.Unmarshal([]byte(docJSON), &doc); err == nil {
			return &doc, nil
		}
		log.Warn("failed to parse cached doc, falling back to repo", slog.Int64("doc_id", docID))
	}

	doc, err := ds.docRepo.DocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.Int64("doc_id", docID))
			return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
		}
		log.Error("failed to get document by id", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if raw, err := json.Marshal(doc); err == nil {
		if err := ds.cache.Set(ctx, key, string(raw)); err != nil {
			log.Warn("failed to set doc to cache", slog.String("error", err.Error()))
		}
	}

	return doc, nil
}

func (ds *DocumentService) recordAudit(ctx context.Context, action string, docID int64, userID int64, originIP *string) error {
	return ds.audit.Append(ctx, &models.AuditRecord{
		DocumentID: docID,
		UserID:     userID,
		Action:     action,
		OriginIP:   originIP,
		CreatedAt:  ds.now(),
	})
}

func (ds *DocumentService) removeFile(log *slog.Logger, storedName string) {
	if err := ds.fileStorage.DeleteFile(storedName); err != nil {
		log.Error("failed to remove orphaned file", slog.String("error", err.Error()), slog.String("stored_name", storedName))
	}
}

func docCacheKey(docID int64) string {
	return fmt.Sprintf("doc:%d", docID)
}
