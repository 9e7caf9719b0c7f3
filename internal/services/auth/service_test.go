package authservice

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"casevault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserAdder struct {
	mock.Mock
}

func (m *MockUserAdder) AddUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) UserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserProvider) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) TokenByKey(ctx context.Context, key string) (*models.SessionToken, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionToken), args.Error(1)
}

func (m *MockTokenRepository) SaveToken(ctx context.Context, token *models.SessionToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) UpdateActivity(ctx context.Context, key string, at time.Time) error {
	args := m.Called(ctx, key, at)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteToken(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteUserTokens(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

const testAdminToken = "admin-secret"

func newAuthService(adder *MockUserAdder, provider *MockUserProvider, tokens *MockTokenRepository, at time.Time) *AuthService {
	service := New(slog.Default(), adder, provider, tokens, 30*time.Minute, testAdminToken)
	service.now = func() time.Time { return at }
	return service
}

func hash(t *testing.T, password string) []byte {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestRegister_BadAdminToken(t *testing.T) {
	t.Parallel()

	service := newAuthService(new(MockUserAdder), new(MockUserProvider), new(MockTokenRepository), time.Now())

	_, err := service.Register(context.Background(), &models.User{Username: "newuser"}, "password123", "wrong")
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()

	service := newAuthService(new(MockUserAdder), new(MockUserProvider), new(MockTokenRepository), time.Now())

	_, err := service.Register(context.Background(), &models.User{Username: "x"}, "password123", testAdminToken)
	assert.ErrorIs(t, err, models.ErrInvalidParams)

	_, err = service.Register(context.Background(), &models.User{Username: "newuser"}, "short", testAdminToken)
	assert.ErrorIs(t, err, models.ErrInvalidParams)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adder := new(MockUserAdder)
	service := newAuthService(adder, new(MockUserProvider), new(MockTokenRepository), time.Now())

	adder.On("AddUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "newuser" && u.Active && len(u.PassHash) > 0
	})).Return(int64(42), nil)

	id, err := service.Register(ctx, &models.User{Username: "newuser"}, "password123", testAdminToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adder := new(MockUserAdder)
	service := newAuthService(adder, new(MockUserProvider), new(MockTokenRepository), time.Now())

	adder.On("AddUser", ctx, mock.Anything).Return(int64(0), models.ErrUserExists)

	_, err := service.Register(ctx, &models.User{Username: "newuser"}, "password123", testAdminToken)
	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestLogin_Success_ReplacesOldTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	tokens := new(MockTokenRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newAuthService(new(MockUserAdder), provider, tokens, now)

	provider.On("UserByUsername", ctx, "alice").Return(&models.User{
		ID:       1,
		Username: "alice",
		PassHash: hash(t, "password123"),
		Active:   true,
	}, nil)

	tokens.On("DeleteUserTokens", ctx, int64(1)).Return(nil)
	tokens.On("SaveToken", ctx, mock.MatchedBy(func(tok *models.SessionToken) bool {
		return tok.UserID == 1 && tok.Key != "" && tok.LastActivity.Equal(now)
	})).Return(nil)

	key, user, err := service.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, key)
	assert.Equal(t, int64(1), user.ID)

	tokens.AssertCalled(t, "DeleteUserTokens", ctx, int64(1))
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	service := newAuthService(new(MockUserAdder), provider, new(MockTokenRepository), time.Now())

	provider.On("UserByUsername", ctx, "alice").Return(&models.User{
		ID:       1,
		PassHash: hash(t, "password123"),
		Active:   true,
	}, nil)

	_, _, err := service.Login(ctx, "alice", "not-the-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	service := newAuthService(new(MockUserAdder), provider, new(MockTokenRepository), time.Now())

	provider.On("UserByUsername", ctx, "ghost").Return(nil, models.ErrUserNotFound)

	_, _, err := service.Login(ctx, "ghost", "whatever123")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	service := newAuthService(new(MockUserAdder), provider, new(MockTokenRepository), time.Now())

	provider.On("UserByUsername", ctx, "alice").Return(&models.User{
		ID:       1,
		PassHash: hash(t, "password123"),
		Active:   false,
	}, nil)

	_, _, err := service.Login(ctx, "alice", "password123")
	assert.ErrorIs(t, err, models.ErrInactiveUser)
}

func TestUserByToken_ValidInsideWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	tokens := new(MockTokenRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newAuthService(new(MockUserAdder), provider, tokens, now)

	tokens.On("TokenByKey", ctx, "key-1").Return(&models.SessionToken{
		Key:          "key-1",
		UserID:       1,
		LastActivity: now.Add(-29 * time.Minute),
	}, nil)
	provider.On("UserByID", ctx, int64(1)).Return(&models.User{ID: 1, Active: true}, nil)
	tokens.On("UpdateActivity", ctx, "key-1", now).Return(nil)

	user, err := service.UserByToken(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	tokens.AssertCalled(t, "UpdateActivity", ctx, "key-1", now)
}

func TestUserByToken_ExactBoundaryStillValid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	tokens := new(MockTokenRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newAuthService(new(MockUserAdder), provider, tokens, now)

	tokens.On("TokenByKey", ctx, "key-1").Return(&models.SessionToken{
		Key:          "key-1",
		UserID:       1,
		LastActivity: now.Add(-30 * time.Minute),
	}, nil)
	provider.On("UserByID", ctx, int64(1)).Return(&models.User{ID: 1, Active: true}, nil)
	tokens.On("UpdateActivity", ctx, "key-1", now).Return(nil)

	_, err := service.UserByToken(ctx, "key-1")
	assert.NoError(t, err)
}

func TestUserByToken_ExpiredRemovesRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	tokens := new(MockTokenRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newAuthService(new(MockUserAdder), provider, tokens, now)

	tokens.On("TokenByKey", ctx, "key-1").Return(&models.SessionToken{
		Key:          "key-1",
		UserID:       1,
		LastActivity: now.Add(-31 * time.Minute),
	}, nil)
	tokens.On("DeleteToken", ctx, "key-1").Return(nil)

	_, err := service.UserByToken(ctx, "key-1")
	assert.ErrorIs(t, err, models.ErrTokenExpired)

	tokens.AssertCalled(t, "DeleteToken", ctx, "key-1")
	provider.AssertNotCalled(t, "UserByID", mock.Anything, mock.Anything)
}

func TestUserByToken_UnknownKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tokens := new(MockTokenRepository)
	service := newAuthService(new(MockUserAdder), new(MockUserProvider), tokens, time.Now())

	tokens.On("TokenByKey", ctx, "nope").Return(nil, models.ErrSessionNotFound)

	_, err := service.UserByToken(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUserByToken_EmptyKey(t *testing.T) {
	t.Parallel()

	service := newAuthService(new(MockUserAdder), new(MockUserProvider), new(MockTokenRepository), time.Now())

	_, err := service.UserByToken(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUserByToken_InactiveUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	tokens := new(MockTokenRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newAuthService(new(MockUserAdder), provider, tokens, now)

	tokens.On("TokenByKey", ctx, "key-1").Return(&models.SessionToken{
		Key:          "key-1",
		UserID:       1,
		LastActivity: now,
	}, nil)
	provider.On("UserByID", ctx, int64(1)).Return(&models.User{ID: 1, Active: false}, nil)

	_, err := service.UserByToken(ctx, "key-1")
	assert.ErrorIs(t, err, models.ErrInactiveUser)
}

func TestVerify_RemainingMinutes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	tokens := new(MockTokenRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newAuthService(new(MockUserAdder), provider, tokens, now)

	tokens.On("TokenByKey", ctx, "key-1").Return(&models.SessionToken{
		Key:          "key-1",
		UserID:       1,
		LastActivity: now.Add(-12 * time.Minute),
	}, nil)
	provider.On("UserByID", ctx, int64(1)).Return(&models.User{ID: 1, Active: true}, nil)
	tokens.On("UpdateActivity", ctx, "key-1", now).Return(nil)

	user, remaining, err := service.Verify(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	// Remaining is measured before the refresh, so 30 - 12 idle minutes.
	assert.InDelta(t, 18.0, remaining, 0.01)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tokens := new(MockTokenRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newAuthService(new(MockUserAdder), new(MockUserProvider), tokens, now)

	tokens.On("TokenByKey", ctx, "key-1").Return(&models.SessionToken{
		Key:          "key-1",
		UserID:       1,
		LastActivity: now.Add(-45 * time.Minute),
	}, nil)
	tokens.On("DeleteToken", ctx, "key-1").Return(nil)

	_, _, err := service.Verify(ctx, "key-1")
	assert.ErrorIs(t, err, models.ErrTokenExpired)
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tokens := new(MockTokenRepository)
	service := newAuthService(new(MockUserAdder), new(MockUserProvider), tokens, time.Now())

	tokens.On("DeleteToken", ctx, "gone").Return(models.ErrSessionNotFound)

	assert.NoError(t, service.Logout(ctx, "gone"))
}

func TestRenew_RotatesToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tokens := new(MockTokenRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newAuthService(new(MockUserAdder), new(MockUserProvider), tokens, now)

	tokens.On("DeleteUserTokens", ctx, int64(1)).Return(nil)
	tokens.On("SaveToken", ctx, mock.MatchedBy(func(tok *models.SessionToken) bool {
		return tok.UserID == 1 && tok.Key != ""
	})).Return(nil)

	key, err := service.Renew(ctx, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	tokens.AssertCalled(t, "DeleteUserTokens", ctx, int64(1))
}
