package userservice

import (
	"context"
	"errors"
	"log/slog"

	"casevault/internal/models"
)

const pkg = "userService/"

type UserService struct {
	log          *slog.Logger
	userAdder    UserAdder
	userProvider UserProvider
}

func New(
	log *slog.Logger,
	userAdder UserAdder,
	userProvider UserProvider) *UserService {
	return &UserService{
		log:          log,
		userAdder:    userAdder,
		userProvider: userProvider,
	}
}

func (u *UserService) AddUser(ctx context.Context, user *models.User) (int64, error) {
	op := pkg + "AddUser"

	log := u.log.With(slog.String("op", op))

	log.Debug("attempting to add user")

	id, err := u.userAdder.AddUser(ctx, user)
	if err != nil {
		var uce *models.UniqueConstraintError
		if errors.As(err, &uce) {
			log.Warn("user already exists", slog.String("constraint", uce.Constraint))
			return 0, models.ErrUserExists
		}
		log.Error("failed to add user", slog.String("error", err.Error()))
		return 0, models.ErrInternal
	}

	log.Debug("user added successfully", slog.Int64("user_id", id))

	return id, nil
}

func (u *UserService) UserByID(ctx context.Context, id int64) (*models.User, error) {
	op := pkg + "UserByID"

	log := u.log.With(slog.String("op", op))

	log.Debug("attempting to get user by id")

	user, err := u.userProvider.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("failed to get user by id", slog.String("error", models.ErrUserNotFound.Error()))
			return nil, models.ErrUserNotFound
		}
		log.Error("failed to get user by id", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	return user, nil
}

func (u *UserService) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	op := pkg + "UserByUsername"

	log := u.log.With(slog.String("op", op))

	log.Debug("attempting to get user by username")

	user, err := u.userProvider.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("failed to get user by username", slog.String("error", models.ErrUserNotFound.Error()))
			return nil, models.ErrUserNotFound
		}
		log.Error("failed to get user by username", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	return user, nil
}
