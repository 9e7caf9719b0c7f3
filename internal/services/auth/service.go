package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"casevault/internal/models"
	"casevault/internal/validator"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

const pkg = "authService/"

// AuthService issues and validates expiring session tokens. Expiry is a
// sliding idle window: a token dies only after idleTimeout of disuse,
// strictly greater than the configured duration. Expired tokens are
// deleted lazily on first use, not swept in the background.
type AuthService struct {
	log          *slog.Logger
	userAdder    UserAdder
	userProvider UserProvider
	tokens       TokenRepository
	idleTimeout  time.Duration
	adminToken   string
	now          func() time.Time
}

func New(
	log *slog.Logger,
	userAdder UserAdder,
	userProvider UserProvider,
	tokens TokenRepository,
	idleTimeout time.Duration,
	adminToken string,
) *AuthService {
	return &AuthService{
		log:          log,
		userAdder:    userAdder,
		userProvider: userProvider,
		tokens:       tokens,
		idleTimeout:  idleTimeout,
		adminToken:   adminToken,
		now:          time.Now,
	}
}

func (a *AuthService) Register(ctx context.Context, req *models.User, password string, adminToken string) (int64, error) {
	op := pkg + "Register"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to register user")

	if adminToken != a.adminToken {
		log.Warn("invalid admin token")
		return 0, models.ErrForbidden
	}

	if !validator.IsValidLogin(req.Username) || !validator.IsValidPassword(password) {
		log.Warn("invalid login or password format")
		return 0, models.ErrInvalidParams
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", slog.String("error", err.Error()))
		return 0, models.ErrInternal
	}

	user := &models.User{
		Username: req.Username,
		Nombre:   req.Nombre,
		Correo:   req.Correo,
		PassHash: passHash,
		Active:   true,
	}

	id, err := a.userAdder.AddUser(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			log.Warn("user already exists", slog.String("username", user.Username))
			return 0, models.ErrUserExists
		}

		log.Error("failed to add user", slog.String("error", err.Error()))
		return 0, models.ErrInternal
	}

	log.Debug("user registered successfully", slog.Int64("user_id", id))

	return id, nil
}

// Login verifies credentials, replaces any live tokens for the user and
// issues a fresh one. One live token per user is an invariant, not a
// cleanup target.
func (a *AuthService) Login(ctx context.Context, username string, password string) (string, *models.User, error) {
	op := pkg + "Login"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to login user")

	user, err := a.userProvider.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Info("user not found")
			return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}

		log.Error("failed to get user", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials")
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	if !user.Active {
		log.Warn("inactive user attempted login", slog.Int64("user_id", user.ID))
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInactiveUser)
	}

	token, err := a.issueToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("user logged in successfully", slog.Int64("user_id", user.ID))

	return token, user, nil
}

// UserByToken authenticates a presented key and refreshes its activity
// timestamp. Failure modes, in order: unknown key, idle timeout
// exceeded (token row removed), bound user inactive.
func (a *AuthService) UserByToken(ctx context.Context, key string) (*models.User, error) {
	op := pkg + "UserByToken"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to authenticate token")

	user, _, err := a.authenticate(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := a.tokens.UpdateActivity(ctx, key, a.now()); err != nil {
		log.Error("failed to refresh token activity", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	return user, nil
}

// Verify reports token validity plus the idle minutes remaining before
// expiry, measured before the activity refresh.
func (a *AuthService) Verify(ctx context.Context, key string) (*models.User, float64, error) {
	op := pkg + "Verify"

	log := a.log.With(slog.String("op", op))

	user, token, err := a.authenticate(ctx, key)
	if err != nil {
		return nil, 0, err
	}

	idle := a.now().Sub(token.LastActivity)
	remaining := (a.idleTimeout - idle).Minutes()
	if remaining < 0 {
		remaining = 0
	}

	if err := a.tokens.UpdateActivity(ctx, key, a.now()); err != nil {
		log.Error("failed to refresh token activity", slog.String("error", err.Error()))
		return nil, 0, models.ErrInternal
	}

	return user, math.Round(remaining*100) / 100, nil
}

// Logout deletes the presented token. Absence is not an error; logging
// out twice succeeds both times.
func (a *AuthService) Logout(ctx context.Context, key string) error {
	op := pkg + "Logout"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to logout user")

	err := a.tokens.DeleteToken(ctx, key)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Debug("no live session for token")
			return nil
		}
		log.Error("failed to delete session", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("user logged out successfully")

	return nil
}

// Renew rotates the user's token. The response shape is the same whether
// or not a token previously existed.
func (a *AuthService) Renew(ctx context.Context, userID int64) (string, error) {
	op := pkg + "Renew"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to renew token", slog.Int64("user_id", userID))

	token, err := a.issueToken(ctx, userID)
	if err != nil {
		log.Error("failed to issue token", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("token renewed successfully", slog.Int64("user_id", userID))

	return token, nil
}

func (a *AuthService) authenticate(ctx context.Context, key string) (*models.User, *models.SessionToken, error) {
	op := pkg + "authenticate"

	log := a.log.With(slog.String("op", op))

	if key == "" {
		return nil, nil, models.ErrInvalidCredentials
	}

	token, err := a.tokens.TokenByKey(ctx, key)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Warn("unknown token presented")
			return nil, nil, models.ErrInvalidCredentials
		}
		log.Error("failed to get token", slog.String("error", err.Error()))
		return nil, nil, models.ErrInternal
	}

	// Strictly greater than the window: a token used exactly at the
	// boundary is still valid.
	if a.now().Sub(token.LastActivity) > a.idleTimeout {
		if err := a.tokens.DeleteToken(ctx, key); err != nil && !errors.Is(err, models.ErrSessionNotFound) {
			log.Error("failed to delete expired token", slog.String("error", err.Error()))
		}
		log.Info("token expired", slog.Int64("user_id", token.UserID))
		return nil, nil, models.ErrTokenExpired
	}

	user, err := a.userProvider.UserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("token bound to missing user", slog.Int64("user_id", token.UserID))
			return nil, nil, models.ErrInvalidCredentials
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, nil, models.ErrInternal
	}

	if !user.Active {
		log.Warn("inactive user presented token", slog.Int64("user_id", user.ID))
		return nil, nil, models.ErrInactiveUser
	}

	return user, token, nil
}

func (a *AuthService) issueToken(ctx context.Context, userID int64) (string, error) {
	op := pkg + "issueToken"

	if err := a.tokens.DeleteUserTokens(ctx, userID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	now := a.now()

	token := &models.SessionToken{
		Key:          uuid.NewV4().String(),
		UserID:       userID,
		CreatedAt:    now,
		LastActivity: now,
	}

	if err := a.tokens.SaveToken(ctx, token); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token.Key, nil
}
