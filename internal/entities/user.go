package entities

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Nombre   string `db:"nombre"`
	Correo   string `db:"correo"`
	PassHash []byte `db:"pass_hash"`
	RoleID   *int64 `db:"role_id"`
	RoleType string `db:"role_tipo"`
	Active   bool   `db:"active"`
}
