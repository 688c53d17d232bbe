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

type folderRepository interface {
	List(ctx context.Context, filter models.FolderFilter) ([]models.Folder, error)
	FindByID(ctx context.Context, id string) (*models.Folder, error)
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
}

// CreateFolderRequest captures fields for creating a folder.
type CreateFolderRequest struct {
	Name      string `json:"name" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
}

// FolderService handles submission folder workflows.
type FolderService struct {
	repo      folderRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(repo folderRepository, validate *validator.Validate, logger *zap.Logger) *FolderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FolderService{repo: repo, validator: validate, logger: logger}
}

// List returns folders matching the filter.
func (s *FolderService) List(ctx context.Context, filter models.FolderFilter) ([]models.Folder, error) {
	folders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err, "failed to list folders")
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

// Get returns a folder by identifier.
func (s *FolderService) Get(ctx context.Context, id string) (*models.Folder, error) {
	folder, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "folder not found")
		}
		return nil, mapStoreError(err, "failed to load folder")
	}
	return folder, nil
}

// Create adds a new folder.
func (s *FolderService) Create(ctx context.Context, req CreateFolderRequest) (*models.Folder, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid folder payload")
	}

	folder, err := s.repo.Create(ctx, &models.Folder{
		Name:      req.Name,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		return nil, mapStoreError(err, "failed to create folder")
	}
	return folder, nil
}
