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

type assessmentRepository interface {
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error)
	FindBySubmission(ctx context.Context, submissionID string) (*models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error)
	Approve(ctx context.Context, id, teacherID string) (*models.Assessment, error)
}

// CreateAssessmentRequest records a manual assessment.
type CreateAssessmentRequest struct {
	SubmissionID string  `json:"submission_id" validate:"required"`
	Score        float64 `json:"score" validate:"min=0,max=100"`
	Feedback     string  `json:"feedback"`
}

// ApproveAssessmentRequest names the approving teacher.
type ApproveAssessmentRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
}

// AssessmentService handles assessment review workflows.
type AssessmentService struct {
	repo      assessmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(repo assessmentRepository, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, validator: validate, logger: logger}
}

// List returns assessments matching the filter.
func (s *AssessmentService) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error) {
	assessments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err, "failed to list assessments")
	}
	if assessments == nil {
		assessments = []models.Assessment{}
	}
	return assessments, nil
}

// GetForSubmission fetches the assessment of a submission. A submission that
// has not been graded yet is a normal outcome, reported with Exists=false.
func (s *AssessmentService) GetForSubmission(ctx context.Context, submissionID string) (*models.AssessmentLookup, error) {
	assessment, err := s.repo.FindBySubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.AssessmentLookup{Exists: false}, nil
		}
		return nil, mapStoreError(err, "failed to load assessment")
	}
	return &models.AssessmentLookup{Exists: true, Assessment: assessment}, nil
}

// Create records a manual assessment for a submission.
func (s *AssessmentService) Create(ctx context.Context, req CreateAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}

	assessment, err := s.repo.Create(ctx, &models.Assessment{
		SubmissionID: req.SubmissionID,
		Score:        req.Score,
		Feedback:     req.Feedback,
	})
	if err != nil {
		return nil, mapStoreError(err, "failed to create assessment")
	}
	return assessment, nil
}

// Approve marks an assessment approved by the given teacher. Approving an
// already-approved assessment simply re-records the approver.
func (s *AssessmentService) Approve(ctx context.Context, id string, req ApproveAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "teacher id is required")
	}

	assessment, err := s.repo.Approve(ctx, id, req.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return nil, mapStoreError(err, "failed to approve assessment")
	}

	s.logger.Info("assessment approved",
		zap.String("assessment_id", assessment.ID),
		zap.String("approved_by", req.TeacherID),
	)
	return assessment, nil
}
