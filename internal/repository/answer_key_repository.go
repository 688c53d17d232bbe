package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

const answerKeyColumns = "id, file_name, content, subject_id, term_id, created_at, updated_at"

// AnswerKeyRepository handles persistence for answer keys.
type AnswerKeyRepository struct {
	db *sqlx.DB
}

// NewAnswerKeyRepository creates a new repository instance.
func NewAnswerKeyRepository(db *sqlx.DB) *AnswerKeyRepository {
	return &AnswerKeyRepository{db: db}
}

// List returns answer keys matching the filter, newest first.
func (r *AnswerKeyRepository) List(ctx context.Context, filter models.AnswerKeyFilter) ([]models.AnswerKey, error) {
	query := fmt.Sprintf("SELECT %s FROM answer_keys WHERE 1=1", answerKeyColumns)
	var args []interface{}

	if filter.SubjectID != "" {
		query += fmt.Sprintf(" AND subject_id = $%d", len(args)+1)
		args = append(args, filter.SubjectID)
	}
	if filter.TermID != "" {
		query += fmt.Sprintf(" AND term_id = $%d", len(args)+1)
		args = append(args, filter.TermID)
	}
	query += " ORDER BY created_at DESC"

	var keys []models.AnswerKey
	if err := r.db.SelectContext(ctx, &keys, query, args...); err != nil {
		return nil, fmt.Errorf("list answer keys: %w", err)
	}
	return keys, nil
}

// FindByID returns an answer key by id.
func (r *AnswerKeyRepository) FindByID(ctx context.Context, id string) (*models.AnswerKey, error) {
	query := fmt.Sprintf("SELECT %s FROM answer_keys WHERE id = $1", answerKeyColumns)
	var key models.AnswerKey
	if err := r.db.GetContext(ctx, &key, query, id); err != nil {
		return nil, err
	}
	return &key, nil
}

// Create inserts an answer key and returns the stored row with its assigned id.
func (r *AnswerKeyRepository) Create(ctx context.Context, key *models.AnswerKey) (*models.AnswerKey, error) {
	query := fmt.Sprintf("INSERT INTO answer_keys (file_name, content, subject_id, term_id) VALUES ($1, $2, $3, $4) RETURNING %s", answerKeyColumns)
	var created models.AnswerKey
	if err := r.db.GetContext(ctx, &created, query, key.FileName, key.Content, key.SubjectID, key.TermID); err != nil {
		return nil, fmt.Errorf("create answer key: %w", err)
	}
	return &created, nil
}
