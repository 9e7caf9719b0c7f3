package docs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"casevault/internal/models"
	errutils "casevault/internal/utils/http_errors"
	"casevault/internal/utils/originip"
	"casevault/internal/utils/parseid"
)

// Download streams the physical file back as an attachment. The
// filename is rebuilt from the logical name and stored extension; the
// content type is a best guess from the extension.
func Download(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, dd DocumentDownloader) {
	op := pkg + "Download"

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

	doc, file, err := dd.DownloadDocument(ctx, docID, requester, originip.FromRequest(r))
	if err != nil {
		writeDocError(log, w, err)
		return
	}
	defer file.Close()

	filename := doc.Name
	if doc.Extension != "" {
		filename = fmt.Sprintf("%s.%s", doc.Name, doc.Extension)
	}

	contentType := mime.TypeByExtension("." + doc.Extension)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprint(doc.SizeBytes))

	if _, err := io.Copy(w, file); err != nil {
		log.Error("failed to write file response", slog.String("error", err.Error()))
	}
}
