package caserepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casevault/internal/entities"
	"casevault/internal/models"

	"github.com/jmoiron/sqlx"
)

const pkg = "caseRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) CaseByID(ctx context.Context, id int64) (*models.Case, error) {
	op := pkg + "CaseByID"

	rawCase := entities.Case{}

	err := r.db.GetContext(ctx, &rawCase,
		`SELECT
			c.id AS id,
			c.employee_id AS employee_id,
			c.responsible_id AS responsible_id,
			c.estado AS estado
		FROM cases c
		WHERE c.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrCaseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Case{
		ID:            rawCase.ID,
		EmployeeID:    rawCase.EmployeeID,
		ResponsibleID: rawCase.ResponsibleID,
		Status:        rawCase.Status,
	}, nil
}
