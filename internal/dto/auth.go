package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserRequest struct {
	Username   string `json:"username"`
	Nombre     string `json:"nombre"`
	Correo     string `json:"correo"`
	Password   string `json:"password"`
	AdminToken string `json:"admin_token"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Correo   string `json:"correo"`
	RoleType string `json:"rol_tipo,omitempty"`
	Active   bool   `json:"activo"`
}

type TokenResponse struct {
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Mensaje string       `json:"mensaje"`
}

type VerifyResponse struct {
	Valid            bool          `json:"valido"`
	User             *UserResponse `json:"user,omitempty"`
	RemainingMinutes float64       `json:"minutos_restantes"`
	Mensaje          string        `json:"mensaje"`
}
