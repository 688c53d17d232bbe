package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

const submissionColumns = "id, student_id, answer_key_id, folder_id, file_name, content, uploaded_at"

// SubmissionRepository handles persistence for student submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new repository instance.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// List returns submissions matching the filter, most recently uploaded first.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error) {
	query := fmt.Sprintf("SELECT %s FROM submissions WHERE 1=1", submissionColumns)
	var args []interface{}

	if filter.StudentID != "" {
		query += fmt.Sprintf(" AND student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	if filter.AnswerKeyID != "" {
		query += fmt.Sprintf(" AND answer_key_id = $%d", len(args)+1)
		args = append(args, filter.AnswerKeyID)
	}
	if filter.FolderID != "" {
		query += fmt.Sprintf(" AND folder_id = $%d", len(args)+1)
		args = append(args, filter.FolderID)
	}
	query += " ORDER BY uploaded_at DESC"

	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// FindByID returns a submission by id.
func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	query := fmt.Sprintf("SELECT %s FROM submissions WHERE id = $1", submissionColumns)
	var submission models.Submission
	if err := r.db.GetContext(ctx, &submission, query, id); err != nil {
		return nil, err
	}
	return &submission, nil
}

// Create inserts a submission and returns the stored row with its assigned id.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	query := fmt.Sprintf("INSERT INTO submissions (student_id, answer_key_id, folder_id, file_name, content) VALUES ($1, $2, $3, $4, $5) RETURNING %s", submissionColumns)
	var created models.Submission
	if err := r.db.GetContext(ctx, &created, query, submission.StudentID, submission.AnswerKeyID, submission.FolderID, submission.FileName, submission.Content); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return &created, nil
}
