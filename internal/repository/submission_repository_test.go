package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

func submissionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "student_id", "answer_key_id", "folder_id", "file_name", "content", "uploaded_at"})
}

func TestSubmissionRepositoryListUnfiltered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	rows := submissionRows().
		AddRow("sub1", "st1", "ak1", "f1", "answer.pdf", "essay text", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, answer_key_id, folder_id, file_name, content, uploaded_at FROM submissions WHERE 1=1 ORDER BY uploaded_at DESC")).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryListAppendsFiltersInOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, answer_key_id, folder_id, file_name, content, uploaded_at FROM submissions WHERE 1=1 AND student_id = $1 AND answer_key_id = $2 ORDER BY uploaded_at DESC")).
		WithArgs("st1", "ak1").
		WillReturnRows(submissionRows())

	list, err := repo.List(context.Background(), models.SubmissionFilter{StudentID: "st1", AnswerKeyID: "ak1"})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryCreateReturnsStoredRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	rows := submissionRows().
		AddRow("sub1", "st1", "ak1", "f1", "answer.pdf", "essay text", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO submissions (student_id, answer_key_id, folder_id, file_name, content) VALUES ($1, $2, $3, $4, $5) RETURNING id, student_id, answer_key_id, folder_id, file_name, content, uploaded_at")).
		WithArgs("st1", "ak1", "f1", "answer.pdf", "essay text").
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), &models.Submission{
		StudentID:   "st1",
		AnswerKeyID: "ak1",
		FolderID:    "f1",
		FileName:    "answer.pdf",
		Content:     "essay text",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub1", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
