package session

import (
	"casevault/internal/dto"
	"casevault/internal/models"
)

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Nombre:   user.Nombre,
		Correo:   user.Correo,
		RoleType: user.RoleType,
		Active:   user.Active,
	}
}
