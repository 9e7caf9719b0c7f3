package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"casevault/internal/dto"
	"casevault/internal/models"
	utils "casevault/internal/utils/http_errors"
)

// Add registers a new user. Gated by the deployment's admin token, not
// by a session.
func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ur UserRegistrar) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}
	defer r.Body.Close()

	var userRequest dto.UserRequest

	if err := json.Unmarshal(body, &userRequest); err != nil {
		log.Warn("failed to unmarshal body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	req := &models.User{
		Username: userRequest.Username,
		Nombre:   userRequest.Nombre,
		Correo:   userRequest.Correo,
	}

	id, err := ur.Register(ctx, req, userRequest.Password, userRequest.AdminToken)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserExists):
			log.Warn("failed to register user", slog.String("error", models.ErrUserExists.Error()))
			utils.WriteJSONError(w, http.StatusConflict, models.ErrUserExists.Error())
		case errors.Is(err, models.ErrInvalidParams):
			log.Warn("failed to register user", slog.String("error", models.ErrInvalidParams.Error()))
			utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		case errors.Is(err, models.ErrForbidden):
			log.Warn("failed to register user", slog.String("error", models.ErrForbidden.Error()))
			utils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		default:
			log.Error("failed to register user", slog.String("error", err.Error()))
			utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		}
		return
	}

	response := map[string]any{
		"data": map[string]any{
			"id":       id,
			"username": userRequest.Username,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
