package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"casevault/internal/models"
	utils "casevault/internal/utils/http_errors"
	"casevault/internal/utils/parseid"
)

// Get lists audit records newest-first, optionally filtered to one
// document. Read-only and restricted to privileged roles; there is no
// mutation surface.
func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ap AuditProvider) {
	op := pkg + "Get"

	log = log.With(slog.String("op", op))

	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		log.Error("failed to get user from context")
		utils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		return
	}

	documentID, err := parseid.ParseOptionalID(r.URL.Query().Get("documento"))
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	recs, err := ap.AuditTrail(ctx, requester, documentID)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("non-privileged audit request", slog.Int64("user_id", requester.ID))
			utils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
			return
		}
		log.Error("failed to list audit records", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := map[string]any{
		"data": map[string]any{
			"records": recs,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
