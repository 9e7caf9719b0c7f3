package docs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"casevault/internal/dto"
	"casevault/internal/models"
	errutils "casevault/internal/utils/http_errors"
	"casevault/internal/utils/parseid"
)

// Get lists documents matching the query filters, restricted to what
// the policy lets the requester see.
func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, dp DocumentProvider) {
	op := pkg + "Get"

	log = log.With(slog.String("op", op))

	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		log.Error("failed to get user from context")
		errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		return
	}

	caseID, err := parseid.ParseOptionalID(r.URL.Query().Get("caso"))
	if err != nil {
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	employeeID, err := parseid.ParseOptionalID(r.URL.Query().Get("empleado"))
	if err != nil {
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	folderID, err := parseid.ParseOptionalID(r.URL.Query().Get("carpeta"))
	if err != nil {
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	filter := models.DocumentFilter{
		CaseID:     caseID,
		EmployeeID: employeeID,
		FolderID:   folderID,
		Type:       r.URL.Query().Get("tipo"),
	}

	rawDocs, err := dp.ListDocuments(ctx, requester, filter)
	if err != nil {
		log.Error("failed to list documents", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	dtoDocs := make([]dto.DocumentResponse, 0, len(rawDocs))

	for _, doc := range rawDocs {
		dtoDocs = append(dtoDocs, toResponse(doc))
	}

	response := map[string]any{
		"data": map[string]any{
			"docs": dtoDocs,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// GetByID returns a single document's metadata, 403 when the policy
// denies and 404 when it does not exist.
func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, dp DocumentProvider) {
	op := pkg + "GetByID"

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

	doc, err := dp.DocumentByID(ctx, docID, requester)
	if err != nil {
		writeDocError(log, w, err)
		return
	}

	response := map[string]any{
		"data": toResponse(doc),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func writeDocError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrForbidden):
		log.Warn("permission denied", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
	case errors.Is(err, models.ErrDocumentNotFound):
		log.Warn("document not found", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
	case errors.Is(err, models.ErrFileNotFound):
		log.Warn("file not found", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusNotFound, models.ErrFileNotFound.Error())
	default:
		log.Error("unexpected failure", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
	}
}
