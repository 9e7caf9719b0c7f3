package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casevault/internal/entities"
	"casevault/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pkg = "userRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) AddUser(ctx context.Context, user *models.User) (int64, error) {
	op := pkg + "AddUser"

	var id int64

	err := r.db.GetContext(ctx, &id,
		`INSERT INTO users(username, nombre, correo, pass_hash, role_id, active)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Username, user.Nombre, user.Correo, user.PassHash, user.RoleID, user.Active)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok {
			if pgErr.Code == "23505" {
				return 0, &models.UniqueConstraintError{
					Constraint: pgErr.Constraint,
					Err:        models.ErrUNIQUEConstraintFailed,
				}
			}
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) UserByID(ctx context.Context, id int64) (*models.User, error) {
	op := pkg + "UserByID"

	rawUser := entities.User{}

	err := r.db.GetContext(ctx, &rawUser,
		`SELECT
			u.id AS id,
			u.username AS username,
			u.nombre AS nombre,
			u.correo AS correo,
			u.pass_hash AS pass_hash,
			u.role_id AS role_id,
			COALESCE(r.tipo, '') AS role_tipo,
			u.active AS active
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(&rawUser), nil
}

func (r *repository) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	op := pkg + "UserByUsername"

	rawUser := entities.User{}

	err := r.db.GetContext(ctx, &rawUser,
		`SELECT
			u.id AS id,
			u.username AS username,
			u.nombre AS nombre,
			u.correo AS correo,
			u.pass_hash AS pass_hash,
			u.role_id AS role_id,
			COALESCE(r.tipo, '') AS role_tipo,
			u.active AS active
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(&rawUser), nil
}

func toModel(raw *entities.User) *models.User {
	return &models.User{
		ID:       raw.ID,
		Username: raw.Username,
		Nombre:   raw.Nombre,
		Correo:   raw.Correo,
		PassHash: raw.PassHash,
		RoleID:   raw.RoleID,
		RoleType: raw.RoleType,
		Active:   raw.Active,
	}
}
