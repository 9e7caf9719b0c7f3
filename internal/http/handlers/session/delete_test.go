package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"casevault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSessionDeleter struct {
	mock.Mock
}

func (m *mockSessionDeleter) Logout(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/auth", nil)

	ctx := context.WithValue(req.Context(), models.TokenContextKey, "key-1")

	req = req.WithContext(ctx)

	sd := new(mockSessionDeleter)
	sd.On("Logout", ctx, "key-1").Return(nil)

	Delete(ctx, slog.Default(), w, req, sd)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed map[string]string
	err := json.NewDecoder(resp.Body).Decode(&parsed)
	assert.NoError(t, err)
	assert.Equal(t, "session closed", parsed["mensaje"])

	sd.AssertExpectations(t)
}

func TestDelete_ServiceErrorStillSucceeds(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/auth", nil)

	ctx := context.WithValue(req.Context(), models.TokenContextKey, "key-1")

	req = req.WithContext(ctx)

	sd := new(mockSessionDeleter)
	sd.On("Logout", ctx, "key-1").Return(models.ErrInternal)

	Delete(ctx, slog.Default(), w, req, sd)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	sd.AssertExpectations(t)
}
