package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

const classColumns = "id, name, teacher_id, academic_year, created_at, updated_at"

// ClassRepository handles persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new repository instance.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns classes matching the filter. Omitted filter fields add no
// predicate; provided ones are AND-combined.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	query := fmt.Sprintf("SELECT %s FROM classes WHERE 1=1", classColumns)
	var args []interface{}

	if filter.TeacherID != "" {
		query += fmt.Sprintf(" AND teacher_id = $%d", len(args)+1)
		args = append(args, filter.TeacherID)
	}
	if filter.AcademicYear != "" {
		query += fmt.Sprintf(" AND academic_year = $%d", len(args)+1)
		args = append(args, filter.AcademicYear)
	}
	query += " ORDER BY created_at DESC"

	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class by id.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf("SELECT %s FROM classes WHERE id = $1", classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Create inserts a class and returns the stored row with its assigned id.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (*models.Class, error) {
	query := fmt.Sprintf("INSERT INTO classes (name, teacher_id, academic_year) VALUES ($1, $2, $3) RETURNING %s", classColumns)
	var created models.Class
	if err := r.db.GetContext(ctx, &created, query, class.Name, class.TeacherID, class.AcademicYear); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return &created, nil
}

// Update modifies a class and returns the stored row.
func (r *ClassRepository) Update(ctx context.Context, id string, class *models.Class) (*models.Class, error) {
	query := fmt.Sprintf("UPDATE classes SET name = $2, academic_year = $3, updated_at = NOW() WHERE id = $1 RETURNING %s", classColumns)
	var updated models.Class
	if err := r.db.GetContext(ctx, &updated, query, id, class.Name, class.AcademicYear); err != nil {
		return nil, err
	}
	return &updated, nil
}
