package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

const termColumns = "id, name, year, start_date, end_date, created_at"

// TermRepository handles persistence for academic terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository creates a new repository instance.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns terms matching the filter, newest year first.
func (r *TermRepository) List(ctx context.Context, filter models.TermFilter) ([]models.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms WHERE 1=1", termColumns)
	var args []interface{}

	if filter.Year != 0 {
		query += fmt.Sprintf(" AND year = $%d", len(args)+1)
		args = append(args, filter.Year)
	}
	query += " ORDER BY year DESC, start_date DESC"

	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query, args...); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// FindByID returns a term by id.
func (r *TermRepository) FindByID(ctx context.Context, id string) (*models.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms WHERE id = $1", termColumns)
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}

// Create inserts a term and returns the stored row with its assigned id.
func (r *TermRepository) Create(ctx context.Context, term *models.Term) (*models.Term, error) {
	query := fmt.Sprintf("INSERT INTO terms (name, year, start_date, end_date) VALUES ($1, $2, $3, $4) RETURNING %s", termColumns)
	var created models.Term
	if err := r.db.GetContext(ctx, &created, query, term.Name, term.Year, term.StartDate, term.EndDate); err != nil {
		return nil, fmt.Errorf("create term: %w", err)
	}
	return &created, nil
}
