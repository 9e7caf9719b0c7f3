package entities

import "time"

type Document struct {
	ID          int64     `db:"id"`
	CaseID      *int64    `db:"case_id"`
	EmployeeID  *int64    `db:"employee_id"`
	FolderID    *int64    `db:"folder_id"`
	CreatorID   *int64    `db:"creator_id"`
	Name        string    `db:"nombre"`
	Type        string    `db:"tipo"`
	Description string    `db:"descripcion"`
	Sensitivity string    `db:"sensitivity"`
	StoredName  string    `db:"stored_name"`
	Extension   string    `db:"extension"`
	SizeBytes   int64     `db:"size_bytes"`
	Checksum    string    `db:"checksum_sha256"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Case struct {
	ID            int64  `db:"id"`
	EmployeeID    int64  `db:"employee_id"`
	ResponsibleID *int64 `db:"responsible_id"`
	Status        string `db:"estado"`
}
