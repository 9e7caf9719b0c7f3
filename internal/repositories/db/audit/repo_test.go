package auditrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"casevault/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *repository) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := NewRepository(sqlxDB)
	return sqlxDB, mock, repo
}

func TestAppend_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	ip := "10.0.0.1"
	rec := &models.AuditRecord{
		DocumentID: 5,
		UserID:     7,
		Action:     models.AuditActionUpload,
		OriginIP:   &ip,
		CreatedAt:  time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO document_audit (document_id, user_id, action, origin_ip, created_at)
		VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(rec.DocumentID, rec.UserID, rec.Action, rec.OriginIP, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_NilOriginIP(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	rec := &models.AuditRecord{
		DocumentID: 5,
		UserID:     7,
		Action:     models.AuditActionDelete,
		CreatedAt:  time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO document_audit`)).
		WithArgs(rec.DocumentID, rec.UserID, rec.Action, nil, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_InsertError(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	rec := &models.AuditRecord{DocumentID: 5, UserID: 7, Action: models.AuditActionDownload, CreatedAt: time.Now()}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO document_audit`)).
		WithArgs(rec.DocumentID, rec.UserID, rec.Action, nil, rec.CreatedAt).
		WillReturnError(errors.New("db failure"))

	err := repo.Append(context.Background(), rec)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Append")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByDocument_NewestFirst(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM document_audit a
		WHERE a.document_id = $1
		ORDER BY a.created_at DESC, a.id DESC`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "user_id", "action", "origin_ip", "created_at"}).
			AddRow(int64(3), int64(5), int64(7), models.AuditActionDownload, nil, now).
			AddRow(int64(1), int64(5), int64(7), models.AuditActionUpload, "10.0.0.1", now.Add(-time.Hour)))

	recs, err := repo.ByDocument(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(3), recs[0].ID)
	assert.Equal(t, models.AuditActionDownload, recs[0].Action)
	assert.Nil(t, recs[0].OriginIP)
	require.NotNil(t, recs[1].OriginIP)
	assert.Equal(t, "10.0.0.1", *recs[1].OriginIP)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByDocument_Empty(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.document_id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "user_id", "action", "origin_ip", "created_at"}))

	recs, err := repo.ByDocument(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecent_Limit(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM document_audit a
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1`)).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "user_id", "action", "origin_ip", "created_at"}).
			AddRow(int64(9), int64(2), int64(4), models.AuditActionDelete, nil, now))

	recs, err := repo.Recent(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.AuditActionDelete, recs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
