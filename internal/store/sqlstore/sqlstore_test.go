package sqlstore

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notodo/internal/models"
	"notodo/internal/store"
	"notodo/internal/store/storetest"
)

func TestSQLiteConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New("sqlite3", ":memory:")
		require.NoError(t, err)
		return s
	})
}

func TestPostgresConformance(t *testing.T) {
	dsn := os.Getenv("NOTODO_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("NOTODO_TEST_POSTGRES_DSN not set")
	}
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New("postgres", dsn)
		require.NoError(t, err)
		for _, table := range []string{"tasks", "notes", "categories", "users"} {
			_, err := s.db.Exec("DELETE FROM " + table)
			require.NoError(t, err)
		}
		return s
	})
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New("mysql", "whatever")
	assert.Error(t, err)
}

func newMock(t *testing.T, dbType DBType) (*SQLStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newStore(sqlx.NewDb(db, string(dbType)), dbType), mock
}

func TestGetTaskNotFound(t *testing.T) {
	s, mock := newMock(t, SQLite)

	mock.ExpectQuery(`SELECT .* FROM tasks WHERE id = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetTask(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPlaceholders(t *testing.T) {
	s, mock := newMock(t, Postgres)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tasks WHERE is_complete = $1 AND owner_id = $2`)).
		WithArgs(true, "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := s.CountTasks(context.Background(), "owner-1", true)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLitePlaceholders(t *testing.T) {
	s, mock := newMock(t, SQLite)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tasks WHERE owner_id = ?`)).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := s.CountTasks(context.Background(), "owner-1", false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingRow(t *testing.T) {
	s, mock := newMock(t, SQLite)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes WHERE id = ?`)).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteNote(context.Background(), "n1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateEmail(t *testing.T) {
	tests := []struct {
		name   string
		dbType DBType
		err    error
	}{
		{"sqlite", SQLite, sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}},
		{"postgres", Postgres, &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMock(t, tt.dbType)
			mock.ExpectExec(`INSERT INTO users`).WillReturnError(tt.err)

			err := s.CreateUser(context.Background(), &models.User{ID: "u1", Email: "a@x.com"})
			assert.ErrorIs(t, err, store.ErrDuplicate)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDriverErrorsPassThrough(t *testing.T) {
	s, mock := newMock(t, SQLite)
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(`SELECT .* FROM notes`).WillReturnError(boom)

	_, err := s.ListNotes(context.Background(), "owner")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
