package documentrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casevault/internal/entities"
	"casevault/internal/models"

	"github.com/jmoiron/sqlx"
)

const pkg = "documentRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) CreateDocument(ctx context.Context, doc *models.Document) (int64, error) {
	op := pkg + "CreateDocument"

	var id int64

	err := r.db.GetContext(ctx, &id,
		`INSERT INTO documents (case_id, employee_id, folder_id, creator_id, nombre, tipo, descripcion,
			sensitivity, stored_name, extension, size_bytes, checksum_sha256, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		RETURNING id`,
		doc.CaseID, doc.EmployeeID, doc.FolderID, doc.CreatorID, doc.Name, doc.Type, doc.Description,
		doc.Sensitivity, doc.StoredName, doc.Extension, doc.SizeBytes, doc.Checksum, doc.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) DocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	op := pkg + "DocumentByID"

	rawDoc := entities.Document{}

	err := r.db.GetContext(ctx, &rawDoc,
		`SELECT
			d.id AS id,
			d.case_id AS case_id,
			d.employee_id AS employee_id,
			d.folder_id AS folder_id,
			d.creator_id AS creator_id,
			d.nombre AS nombre,
			d.tipo AS tipo,
			d.descripcion AS descripcion,
			d.sensitivity AS sensitivity,
			d.stored_name AS stored_name,
			d.extension AS extension,
			d.size_bytes AS size_bytes,
			d.checksum_sha256 AS checksum_sha256,
			d.created_at AS created_at,
			d.updated_at AS updated_at
		FROM documents d
		WHERE d.id = $1`,
		id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(&rawDoc), nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	op := pkg + "Delete"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM documents WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
	}

	return nil
}

func (r *repository) FilteredDocuments(ctx context.Context, filter models.DocumentFilter) ([]*models.Document, error) {
	op := pkg + "FilteredDocuments"

	rawDocs := make([]entities.Document, 0)

	err := r.db.SelectContext(ctx, &rawDocs,
		`SELECT
			d.id AS id,
			d.case_id AS case_id,
			d.employee_id AS employee_id,
			d.folder_id AS folder_id,
			d.creator_id AS creator_id,
			d.nombre AS nombre,
			d.tipo AS tipo,
			d.descripcion AS descripcion,
			d.sensitivity AS sensitivity,
			d.stored_name AS stored_name,
			d.extension AS extension,
			d.size_bytes AS size_bytes,
			d.checksum_sha256 AS checksum_sha256,
			d.created_at AS created_at,
			d.updated_at AS updated_at
		FROM documents d
		WHERE ($1::bigint IS NULL OR d.case_id = $1)
		AND ($2 = '' OR d.tipo = $2)
		AND ($3::bigint IS NULL OR d.employee_id = $3)
		AND ($4::bigint IS NULL OR d.folder_id = $4)
		ORDER BY d.created_at DESC, d.id DESC`,
		filter.CaseID, filter.Type, filter.EmployeeID, filter.FolderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	docs := make([]*models.Document, 0, len(rawDocs))

	for i := range rawDocs {
		docs = append(docs, toModel(&rawDocs[i]))
	}

	return docs, nil
}

func toModel(raw *entities.Document) *models.Document {
	return &models.Document{
		ID:          raw.ID,
		CaseID:      raw.CaseID,
		EmployeeID:  raw.EmployeeID,
		FolderID:    raw.FolderID,
		CreatorID:   raw.CreatorID,
		Name:        raw.Name,
		Type:        raw.Type,
		Description: raw.Description,
		Sensitivity: raw.Sensitivity,
		StoredName:  raw.StoredName,
		Extension:   raw.Extension,
		SizeBytes:   raw.SizeBytes,
		Checksum:    raw.Checksum,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}
}
