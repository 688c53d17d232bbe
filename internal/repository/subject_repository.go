package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

const subjectColumns = "id, name, teacher_id, class_id, created_at, updated_at"

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects matching the filter, newest first.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE 1=1", subjectColumns)
	var args []interface{}

	if filter.TeacherID != "" {
		query += fmt.Sprintf(" AND teacher_id = $%d", len(args)+1)
		args = append(args, filter.TeacherID)
	}
	if filter.ClassID != "" {
		query += fmt.Sprintf(" AND class_id = $%d", len(args)+1)
		args = append(args, filter.ClassID)
	}
	query += " ORDER BY created_at DESC"

	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject by id.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE id = $1", subjectColumns)
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create inserts a subject and returns the stored row with its assigned id.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	query := fmt.Sprintf("INSERT INTO subjects (name, teacher_id, class_id) VALUES ($1, $2, $3) RETURNING %s", subjectColumns)
	var created models.Subject
	if err := r.db.GetContext(ctx, &created, query, subject.Name, subject.TeacherID, subject.ClassID); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return &created, nil
}

// Update modifies a subject and returns the stored row.
func (r *SubjectRepository) Update(ctx context.Context, id string, subject *models.Subject) (*models.Subject, error) {
	query := fmt.Sprintf("UPDATE subjects SET name = $2, class_id = $3, updated_at = NOW() WHERE id = $1 RETURNING %s", subjectColumns)
	var updated models.Subject
	if err := r.db.GetContext(ctx, &updated, query, id, subject.Name, subject.ClassID); err != nil {
		return nil, err
	}
	return &updated, nil
}
