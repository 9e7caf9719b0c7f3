package userservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"casevault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func TestAddUser_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adder := new(MockUserAdder)
	service := New(slog.Default(), adder, new(MockUserProvider))

	user := &models.User{Username: "alice"}

	adder.On("AddUser", ctx, user).Return(int64(1), nil)

	id, err := service.AddUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestAddUser_Duplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adder := new(MockUserAdder)
	service := New(slog.Default(), adder, new(MockUserProvider))

	adder.On("AddUser", ctx, mock.Anything).Return(int64(0), &models.UniqueConstraintError{
		Constraint: "users_username_key",
		Err:        models.ErrUNIQUEConstraintFailed,
	})

	_, err := service.AddUser(ctx, &models.User{Username: "alice"})
	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestAddUser_InternalError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adder := new(MockUserAdder)
	service := New(slog.Default(), adder, new(MockUserProvider))

	adder.On("AddUser", ctx, mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := service.AddUser(ctx, &models.User{Username: "alice"})
	assert.ErrorIs(t, err, models.ErrInternal)
}

func TestUserByID_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	service := New(slog.Default(), new(MockUserAdder), provider)

	provider.On("UserByID", ctx, int64(1)).Return(&models.User{ID: 1, Username: "alice"}, nil)

	user, err := service.UserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestUserByID_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	service := New(slog.Default(), new(MockUserAdder), provider)

	provider.On("UserByID", ctx, int64(99)).Return(nil, models.ErrUserNotFound)

	_, err := service.UserByID(ctx, 99)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserByUsername_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := new(MockUserProvider)
	service := New(slog.Default(), new(MockUserAdder), provider)

	provider.On("UserByUsername", ctx, "ghost").Return(nil, models.ErrUserNotFound)

	_, err := service.UserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}
