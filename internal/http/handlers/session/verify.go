package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"casevault/internal/dto"
	"casevault/internal/http/middleware"
	"casevault/internal/models"
	utils "casevault/internal/utils/http_errors"
)

// Verify reports token validity and the idle minutes remaining. The
// route is public; the token comes from the header or query, and an
// invalid or expired token is a 200 with valido=false, not an error.
func Verify(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sv SessionVerifier) {
	op := pkg + "Verify"

	log = log.With(slog.String("op", op))

	key := middleware.TokenFromRequest(r)
	if key == "" {
		utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	user, remaining, err := sv.Verify(ctx, key)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) ||
			errors.Is(err, models.ErrTokenExpired) ||
			errors.Is(err, models.ErrInactiveUser) {
			response := dto.VerifyResponse{
				Valid:   false,
				Mensaje: err.Error(),
			}

			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(response); err != nil {
				log.Error("failed to write response", slog.String("error", err.Error()))
			}
			return
		}

		log.Error("failed to verify token", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	userResponse := toUserResponse(user)

	response := dto.VerifyResponse{
		Valid:            true,
		User:             &userResponse,
		RemainingMinutes: remaining,
		Mensaje:          "token valid",
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
