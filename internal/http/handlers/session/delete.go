package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"casevault/internal/models"
)

// Delete handles logout. Idempotent: a token that is already gone still
// yields success.
func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sd SessionDeleter) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	key, _ := r.Context().Value(models.TokenContextKey).(string)

	if err := sd.Logout(ctx, key); err != nil {
		log.Error("failed to delete session", slog.String("error", err.Error()))
	}

	response := map[string]any{
		"mensaje": "session closed",
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
