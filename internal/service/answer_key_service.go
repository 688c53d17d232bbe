package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
)

type answerKeyRepository interface {
	List(ctx context.Context, filter models.AnswerKeyFilter) ([]models.AnswerKey, error)
	FindByID(ctx context.Context, id string) (*models.AnswerKey, error)
	Create(ctx context.Context, key *models.AnswerKey) (*models.AnswerKey, error)
}

// CreateAnswerKeyRequest captures fields for creating an answer key.
type CreateAnswerKeyRequest struct {
	FileName  string `json:"file_name" validate:"required"`
	Content   string `json:"content" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	TermID    string `json:"term_id" validate:"required"`
}

// AnswerKeyService handles answer key workflows.
type AnswerKeyService struct {
	repo      answerKeyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnswerKeyService creates a new answer key service.
func NewAnswerKeyService(repo answerKeyRepository, validate *validator.Validate, logger *zap.Logger) *AnswerKeyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerKeyService{repo: repo, validator: validate, logger: logger}
}

// List returns answer keys matching the filter.
func (s *AnswerKeyService) List(ctx context.Context, filter models.AnswerKeyFilter) ([]models.AnswerKey, error) {
	keys, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err, "failed to list answer keys")
	}
	if keys == nil {
		keys = []models.AnswerKey{}
	}
	return keys, nil
}

// Get returns an answer key by identifier.
func (s *AnswerKeyService) Get(ctx context.Context, id string) (*models.AnswerKey, error) {
	key, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "answer key not found")
		}
		return nil, mapStoreError(err, "failed to load answer key")
	}
	return key, nil
}

// Create adds a new answer key.
func (s *AnswerKeyService) Create(ctx context.Context, req CreateAnswerKeyRequest) (*models.AnswerKey, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid answer key payload")
	}

	key, err := s.repo.Create(ctx, &models.AnswerKey{
		FileName:  req.FileName,
		Content:   req.Content,
		SubjectID: req.SubjectID,
		TermID:    req.TermID,
	})
	if err != nil {
		return nil, mapStoreError(err, "failed to create answer key")
	}
	return key, nil
}
