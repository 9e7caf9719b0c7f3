package dto

import "time"

// UploadMeta carries the caller-supplied logical fields of a multipart
// upload. Foreign keys arrive as form values; empty string means null.
type UploadMeta struct {
	Name        string
	Type        string
	Description string
	Sensitivity string
	CaseID      *int64
	EmployeeID  *int64
	FolderID    *int64
}

type DocumentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nombre"`
	Type        string    `json:"tipo"`
	Description string    `json:"descripcion"`
	Sensitivity string    `json:"nivel_sensibilidad"`
	Extension   string    `json:"extension"`
	SizeBytes   int64     `json:"tamano_bytes"`
	Checksum    string    `json:"checksum_sha256"`
	CaseID      *int64    `json:"caso"`
	EmployeeID  *int64    `json:"empleado"`
	FolderID    *int64    `json:"carpeta"`
	CreatorID   *int64    `json:"usuario_creador"`
	CreatedAt   time.Time `json:"fecha_carga"`
}
