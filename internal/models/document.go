package models

import (
	"strings"
	"time"
)

// Sensitivity tiers. Unknown values fail closed in the access service.
const (
	SensitivityPublic       = "PUBLIC"
	SensitivityConfidential = "CONFIDENTIAL"
	SensitivityRestricted   = "RESTRICTED"
)

type Document struct {
	ID          int64     `json:"id"`
	CaseID      *int64    `json:"caso,omitempty"`
	EmployeeID  *int64    `json:"empleado,omitempty"`
	FolderID    *int64    `json:"carpeta,omitempty"`
	CreatorID   *int64    `json:"usuario_creador,omitempty"`
	Name        string    `json:"nombre"`
	Type        string    `json:"tipo"`
	Description string    `json:"descripcion"`
	Sensitivity string    `json:"nivel_sensibilidad"`
	StoredName  string    `json:"stored_name"`
	Extension   string    `json:"extension"`
	SizeBytes   int64     `json:"tamano_bytes"`
	Checksum    string    `json:"checksum_sha256"`
	CreatedAt   time.Time `json:"fecha_carga"`
	UpdatedAt   time.Time `json:"fecha_modificacion"`
}

// StoredFile is the content store's report for a single written object.
type StoredFile struct {
	StoredName string
	Extension  string
	SizeBytes  int64
	Checksum   string
}

type DocumentFilter struct {
	CaseID     *int64
	EmployeeID *int64
	FolderID   *int64
	Type       string
}

// NormalizeSensitivity maps free-form input onto a known tier,
// defaulting to CONFIDENTIAL for anything unrecognized or empty.
func NormalizeSensitivity(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case SensitivityPublic:
		return SensitivityPublic
	case SensitivityRestricted:
		return SensitivityRestricted
	case SensitivityConfidential:
		return SensitivityConfidential
	default:
		return SensitivityConfidential
	}
}

type Case struct {
	ID            int64  `json:"id"`
	EmployeeID    int64  `json:"empleado"`
	ResponsibleID *int64 `json:"responsable,omitempty"`
	Status        string `json:"estado"`
}
