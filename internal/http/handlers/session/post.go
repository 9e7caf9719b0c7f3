package session

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

// Add handles login: credentials in, bearer token plus user profile out.
func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sc SessionCreator) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}
	defer r.Body.Close()

	var req dto.LoginRequest

	if err := json.Unmarshal(body, &req); err != nil {
		log.Warn("failed to unmarshal body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	if req.Username == "" || req.Password == "" {
		utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	token, user, err := sc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials):
			log.Info("invalid credentials")
			utils.WriteJSONError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, models.ErrInactiveUser):
			log.Warn("inactive user login attempt")
			utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrInactiveUser.Error())
		default:
			log.Error("failed to login", slog.String("error", err.Error()))
			utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		}
		return
	}

	response := dto.TokenResponse{
		Token:   token,
		User:    toUserResponse(user),
		Mensaje: "login successful",
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
