package models

// Privileged role types. Matching is case-insensitive and lives in the
// access service; nothing else compares role strings.
const (
	RoleAdministrator = "administrador"
	RoleTHA           = "tha"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Correo   string `json:"correo"`
	PassHash []byte `json:"-"`
	RoleID   *int64 `json:"rol,omitempty"`
	RoleType string `json:"rol_tipo,omitempty"`
	Active   bool   `json:"activo"`
}

type Role struct {
	ID   int64  `json:"id"`
	Tipo string `json:"tipo"`
}
