package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func teacherRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"})
}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := teacherRows().
		AddRow("t1", "Teacher A", "a@example.com", "hash", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, created_at, updated_at FROM teachers ORDER BY created_at DESC")).
		WillReturnRows(rows)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "t1", list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateReturnsStoredRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := teacherRows().
		AddRow("t1", "Teacher A", "a@example.com", "hash", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO teachers (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id, name, email, password_hash, created_at, updated_at")).
		WithArgs("Teacher A", "a@example.com", "hash").
		WillReturnRows(rows)

	teacher, err := repo.Create(context.Background(), "Teacher A", "a@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "t1", teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := teacherRows().
		AddRow("t1", "Teacher A", "a@example.com", "hash", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, created_at, updated_at FROM teachers WHERE LOWER(email) = LOWER($1)")).
		WithArgs("A@Example.com").
		WillReturnRows(rows)

	teacher, err := repo.FindByEmail(context.Background(), "A@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", teacher.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := teacherRows().
		AddRow("t1", "Renamed", "new@example.com", "hash", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE teachers SET name = $2, email = $3, updated_at = NOW() WHERE id = $1 RETURNING id, name, email, password_hash, created_at, updated_at")).
		WithArgs("t1", "Renamed", "new@example.com").
		WillReturnRows(rows)

	teacher, err := repo.Update(context.Background(), "t1", "Renamed", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", teacher.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
