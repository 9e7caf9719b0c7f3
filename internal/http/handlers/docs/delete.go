package docs

import (
	"context"
	"log/slog"
	"net/http"

	"casevault/internal/models"
	errutils "casevault/internal/utils/http_errors"
	"casevault/internal/utils/originip"
	"casevault/internal/utils/parseid"
)

// Delete removes a document: 204 on success, 403 on policy deny.
func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, dd DocumentDeleter) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		log.Error("failed to get user from context")
		errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		return
	}

	docID, err := parseid.ParseID(rawID)
	if err != nil {
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	if err := dd.DeleteDocument(ctx, docID, requester, originip.FromRequest(r)); err != nil {
		writeDocError(log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
