package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

const studentColumns = "id, name, class_id, created_at"

// StudentRepository handles persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new repository instance.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the filter, ordered by name.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE 1=1", studentColumns)
	var args []interface{}

	if filter.ClassID != "" {
		query += fmt.Sprintf(" AND class_id = $%d", len(args)+1)
		args = append(args, filter.ClassID)
	}
	query += " ORDER BY name ASC"

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID returns a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a student and returns the stored row with its assigned id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	query := fmt.Sprintf("INSERT INTO students (name, class_id) VALUES ($1, $2) RETURNING %s", studentColumns)
	var created models.Student
	if err := r.db.GetContext(ctx, &created, query, student.Name, student.ClassID); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return &created, nil
}
