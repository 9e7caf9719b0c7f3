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
	"casevault/internal/utils/originip"
	"casevault/internal/utils/parseid"
)

const maxUploadBytes = 32 << 20

// Upload accepts a multipart body with a "file" part plus the logical
// form fields. Optional numeric foreign keys arrive as form values;
// empty string means null.
func Upload(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, du DocumentUploader) {
	op := pkg + "Upload"

	log = log.With(slog.String("op", op))

	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		log.Error("failed to get user from context")
		errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Warn("failed to parse multipart form", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("missing file part", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}
	defer file.Close()

	name := r.FormValue("nombre")
	if name == "" {
		name = header.Filename
	}

	caseID, err := parseid.ParseOptionalID(r.FormValue("caso"))
	if err != nil {
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	employeeID, err := parseid.ParseOptionalID(r.FormValue("empleado"))
	if err != nil {
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	folderID, err := parseid.ParseOptionalID(r.FormValue("carpeta"))
	if err != nil {
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	meta := dto.UploadMeta{
		Name:        name,
		Type:        r.FormValue("tipo"),
		Description: r.FormValue("descripcion"),
		Sensitivity: r.FormValue("nivel_sensibilidad"),
		CaseID:      caseID,
		EmployeeID:  employeeID,
		FolderID:    folderID,
	}

	doc, err := du.UploadDocument(ctx, requester, &meta, file, originip.FromRequest(r))
	if err != nil {
		if errors.Is(err, models.ErrInvalidParams) {
			log.Warn("invalid upload payload", slog.String("error", err.Error()))
			errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
			return
		}
		log.Error("failed to upload document", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := map[string]any{
		"data": toResponse(doc),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
