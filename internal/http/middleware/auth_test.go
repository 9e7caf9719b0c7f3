package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"casevault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) UserByToken(ctx context.Context, key string) (*models.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuth_Success(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: 1, Username: "alice", Active: true}

	auth := new(mockAuthenticator)
	auth.On("UserByToken", mock.Anything, "key-1").Return(user, nil)

	var gotUser *models.User
	var gotKey string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = r.Context().Value(models.UserContextKey).(*models.User)
		gotKey, _ = r.Context().Value(models.TokenContextKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Token key-1")

	Auth(slog.Default(), auth)(next).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, user, gotUser)
	assert.Equal(t, "key-1", gotKey)

	auth.AssertExpectations(t)
}

func TestAuth_Fail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"expired token", models.ErrTokenExpired, http.StatusUnauthorized},
		{"inactive user", models.ErrInactiveUser, http.StatusUnauthorized},
		{"invalid token", models.ErrInvalidCredentials, http.StatusUnauthorized},
		{"internal error", models.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth := new(mockAuthenticator)
			auth.On("UserByToken", mock.Anything, "key-1").Return(nil, tt.err)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler must not run")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
			req.Header.Set("Authorization", "Token key-1")

			Auth(slog.Default(), auth)(next).ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, tt.code, resp.StatusCode)

			auth.AssertExpectations(t)
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{"token scheme", "Token abc", "", "abc"},
		{"bearer scheme", "Bearer abc", "", "abc"},
		{"query fallback", "", "abc", "abc"},
		{"header wins over query", "Token abc", "xyz", "abc"},
		{"unknown scheme falls back to query", "Basic abc", "xyz", "xyz"},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			url := "/api/documents"
			if tt.query != "" {
				url += "?token=" + tt.query
			}

			req := httptest.NewRequest(http.MethodGet, url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			assert.Equal(t, tt.want, TokenFromRequest(req))
		})
	}
}
