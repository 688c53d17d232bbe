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

type submissionRepository interface {
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) (*models.Submission, error)
}

// CreateSubmissionRequest captures fields for uploading a submission.
type CreateSubmissionRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	AnswerKeyID string `json:"answer_key_id" validate:"required"`
	FolderID    string `json:"folder_id" validate:"required"`
	FileName    string `json:"file_name" validate:"required"`
	Content     string `json:"content" validate:"required"`
}

// SubmissionService handles student submission workflows.
type SubmissionService struct {
	repo      submissionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(repo submissionRepository, validate *validator.Validate, logger *zap.Logger) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{repo: repo, validator: validate, logger: logger}
}

// List returns submissions matching the filter, newest first.
func (s *SubmissionService) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error) {
	submissions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err, "failed to list submissions")
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	return submissions, nil
}

// Get returns a submission by identifier.
func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, mapStoreError(err, "failed to load submission")
	}
	return submission, nil
}

// Create records an uploaded submission.
func (s *SubmissionService) Create(ctx context.Context, req CreateSubmissionRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	submission, err := s.repo.Create(ctx, &models.Submission{
		StudentID:   req.StudentID,
		AnswerKeyID: req.AnswerKeyID,
		FolderID:    req.FolderID,
		FileName:    req.FileName,
		Content:     req.Content,
	})
	if err != nil {
		return nil, mapStoreError(err, "failed to create submission")
	}
	return submission, nil
}
