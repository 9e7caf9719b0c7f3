package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"casevault/internal/models"
	utils "casevault/internal/utils/http_errors"
)

// Auth resolves the bearer credential to a user and stores both the
// principal and the raw token key in the request context. All token
// failures map to 401 with the authenticator's message.
func Auth(log *slog.Logger, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op := pkg + "Auth"

			log := log.With(slog.String("op", op))

			key := TokenFromRequest(r)

			requester, err := auth.UserByToken(r.Context(), key)
			if err != nil {
				log.Warn("failed to authenticate token", slog.String("error", err.Error()))

				switch {
				case errors.Is(err, models.ErrTokenExpired):
					utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrTokenExpired.Error())
				case errors.Is(err, models.ErrInactiveUser):
					utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrInactiveUser.Error())
				case errors.Is(err, models.ErrInvalidCredentials):
					utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
				default:
					utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
				}
				return
			}

			ctx := context.WithValue(r.Context(), models.UserContextKey, requester)
			ctx = context.WithValue(ctx, models.TokenContextKey, key)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest reads the credential from the Authorization header
// ("Token <key>" or "Bearer <key>") or, failing that, a token query
// parameter.
func TokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(header, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(header, scheme))
		}
	}

	return r.URL.Query().Get("token")
}
