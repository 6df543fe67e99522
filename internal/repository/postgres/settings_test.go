package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*SettingsRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSettingsRepo(db), mock
}

func TestSettingsRepo_GetFound(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT value FROM edf_settings").
		WithArgs("excluded_email_domains").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("example.com\nspam.test"))

	v, found, err := repo.Get(context.Background(), "excluded_email_domains")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "example.com\nspam.test", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepo_GetMissing(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT value FROM edf_settings").
		WithArgs("excluded_email_domains").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, found, err := repo.Get(context.Background(), "excluded_email_domains")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "", v)
}

func TestSettingsRepo_GetError(t *testing.T) {
	repo, mock := setupTestDB(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT value FROM edf_settings").WillReturnError(boom)

	_, _, err := repo.Get(context.Background(), "excluded_email_domains")
	assert.ErrorIs(t, err, boom)
}

func TestSettingsRepo_SetUpserts(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectExec("INSERT INTO edf_settings").
		WithArgs("excluded_email_domains", " example.com \r\n").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Set(context.Background(), "excluded_email_domains", " example.com \r\n")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepo_SetError(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectExec("INSERT INTO edf_settings").WillReturnError(errors.New("read-only transaction"))

	err := repo.Set(context.Background(), "excluded_email_domains", "x")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "set setting excluded_email_domains")
}
