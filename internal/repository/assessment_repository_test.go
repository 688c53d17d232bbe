package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

func assessmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "submission_id", "score", "feedback", "is_approved", "approved_by", "created_at", "updated_at"})
}

func TestAssessmentRepositoryListFiltersThroughSubmissions(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	approved := true
	rows := assessmentRows().
		AddRow("a1", "sub1", 87.5, "good work", true, "t1", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM assessments a JOIN submissions s ON s.id = a.submission_id WHERE 1=1 AND s.answer_key_id = $1 AND a.is_approved = $2 ORDER BY a.created_at DESC")).
		WithArgs("ak1", true).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.AssessmentFilter{AnswerKeyID: "ak1", Approved: &approved})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryFindBySubmissionNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, submission_id, score, feedback, is_approved, approved_by, created_at, updated_at FROM assessments WHERE submission_id = $1")).
		WithArgs("sub-missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBySubmission(context.Background(), "sub-missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryUpsertForSubmission(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	rows := assessmentRows().
		AddRow("a1", "sub1", 72.0, "auto-graded", false, nil, time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO assessments .+ON CONFLICT \\(submission_id\\) DO UPDATE").
		WithArgs("sub1", 72.0, "auto-graded").
		WillReturnRows(rows)

	stored, err := repo.UpsertForSubmission(context.Background(), &models.Assessment{
		SubmissionID: "sub1",
		Score:        72.0,
		Feedback:     "auto-graded",
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", stored.ID)
	assert.False(t, stored.IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryApprove(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	approver := "t1"
	rows := assessmentRows().
		AddRow("a1", "sub1", 72.0, "auto-graded", true, approver, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE assessments SET is_approved = TRUE, approved_by = $2, updated_at = NOW() WHERE id = $1 RETURNING id, submission_id, score, feedback, is_approved, approved_by, created_at, updated_at")).
		WithArgs("a1", "t1").
		WillReturnRows(rows)

	approved, err := repo.Approve(context.Background(), "a1", "t1")
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "t1", *approved.ApprovedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryGradeSheet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	rows := sqlmock.NewRows([]string{"student_name", "file_name", "score", "is_approved"}).
		AddRow("Alice", "alice.pdf", 91.0, true).
		AddRow("Bob", "bob.pdf", 68.5, false)
	mock.ExpectQuery("SELECT st.name AS student_name, s.file_name, a.score, a.is_approved").
		WithArgs("f1").
		WillReturnRows(rows)

	sheet, err := repo.GradeSheet(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, sheet, 2)
	assert.Equal(t, "Alice", sheet[0].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
