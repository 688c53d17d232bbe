package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

const assessmentColumns = "id, submission_id, score, feedback, is_approved, approved_by, created_at, updated_at"

// AssessmentRepository handles persistence for assessments.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new repository instance.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// List returns assessments matching the filter, newest first. The answer-key
// filter joins through submissions.
func (r *AssessmentRepository) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error) {
	query := "SELECT a.id, a.submission_id, a.score, a.feedback, a.is_approved, a.approved_by, a.created_at, a.updated_at" +
		" FROM assessments a JOIN submissions s ON s.id = a.submission_id WHERE 1=1"
	var args []interface{}

	if filter.AnswerKeyID != "" {
		query += fmt.Sprintf(" AND s.answer_key_id = $%d", len(args)+1)
		args = append(args, filter.AnswerKeyID)
	}
	if filter.Approved != nil {
		query += fmt.Sprintf(" AND a.is_approved = $%d", len(args)+1)
		args = append(args, *filter.Approved)
	}
	query += " ORDER BY a.created_at DESC"

	var assessments []models.Assessment
	if err := r.db.SelectContext(ctx, &assessments, query, args...); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

// FindByID returns an assessment by id.
func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*models.Assessment, error) {
	query := fmt.Sprintf("SELECT %s FROM assessments WHERE id = $1", assessmentColumns)
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, id); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// FindBySubmission returns the assessment for a submission, if any.
func (r *AssessmentRepository) FindBySubmission(ctx context.Context, submissionID string) (*models.Assessment, error) {
	query := fmt.Sprintf("SELECT %s FROM assessments WHERE submission_id = $1", assessmentColumns)
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, submissionID); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Create inserts an assessment and returns the stored row with its assigned id.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error) {
	query := fmt.Sprintf("INSERT INTO assessments (submission_id, score, feedback) VALUES ($1, $2, $3) RETURNING %s", assessmentColumns)
	var created models.Assessment
	if err := r.db.GetContext(ctx, &created, query, assessment.SubmissionID, assessment.Score, assessment.Feedback); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return &created, nil
}

// UpsertForSubmission writes the grading result, replacing any previous score
// for the submission. An approved assessment keeps its approval.
func (r *AssessmentRepository) UpsertForSubmission(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error) {
	query := fmt.Sprintf(`INSERT INTO assessments (submission_id, score, feedback) VALUES ($1, $2, $3)
		ON CONFLICT (submission_id) DO UPDATE SET score = EXCLUDED.score, feedback = EXCLUDED.feedback, updated_at = NOW()
		RETURNING %s`, assessmentColumns)
	var stored models.Assessment
	if err := r.db.GetContext(ctx, &stored, query, assessment.SubmissionID, assessment.Score, assessment.Feedback); err != nil {
		return nil, fmt.Errorf("upsert assessment: %w", err)
	}
	return &stored, nil
}

// Approve marks an assessment approved by the given teacher and returns the
// stored row. Re-approving is a no-op beyond refreshing the approver.
func (r *AssessmentRepository) Approve(ctx context.Context, id, teacherID string) (*models.Assessment, error) {
	query := fmt.Sprintf("UPDATE assessments SET is_approved = TRUE, approved_by = $2, updated_at = NOW() WHERE id = $1 RETURNING %s", assessmentColumns)
	var approved models.Assessment
	if err := r.db.GetContext(ctx, &approved, query, id, teacherID); err != nil {
		return nil, err
	}
	return &approved, nil
}

// GradeRow is one line of a folder grade sheet.
type GradeRow struct {
	StudentName string  `db:"student_name"`
	FileName    string  `db:"file_name"`
	Score       float64 `db:"score"`
	IsApproved  bool    `db:"is_approved"`
}

// GradeSheet returns student/score rows for every assessed submission in a
// folder, ordered by student name.
func (r *AssessmentRepository) GradeSheet(ctx context.Context, folderID string) ([]GradeRow, error) {
	const query = `SELECT st.name AS student_name, s.file_name, a.score, a.is_approved
		FROM assessments a
		JOIN submissions s ON s.id = a.submission_id
		JOIN students st ON st.id = s.student_id
		WHERE s.folder_id = $1
		ORDER BY st.name ASC`
	var rows []GradeRow
	if err := r.db.SelectContext(ctx, &rows, query, folderID); err != nil {
		return nil, fmt.Errorf("grade sheet: %w", err)
	}
	return rows, nil
}
