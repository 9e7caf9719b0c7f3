package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"casevault/internal/dto"
	"casevault/internal/models"
	utils "casevault/internal/utils/http_errors"
)

// Renew rotates the requester's token. The response shape is the same
// whether or not a previous token existed.
func Renew(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sr SessionRenewer) {
	op := pkg + "Renew"

	log = log.With(slog.String("op", op))

	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		log.Error("failed to get user from context")
		utils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		return
	}

	token, err := sr.Renew(ctx, requester.ID)
	if err != nil {
		log.Error("failed to renew token", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := dto.TokenResponse{
		Token:   token,
		User:    toUserResponse(requester),
		Mensaje: "token renewed",
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
