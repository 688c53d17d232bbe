package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/internal/repository"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/export"
)

type reportFolderRepository interface {
	FindByID(ctx context.Context, id string) (*models.Folder, error)
}

type reportAssessmentRepository interface {
	GradeSheet(ctx context.Context, folderID string) ([]repository.GradeRow, error)
}

// ReportService renders grade sheets for folders.
type ReportService struct {
	folders     reportFolderRepository
	assessments reportAssessmentRepository
	exporter    *export.PDFExporter
	logger      *zap.Logger
}

// NewReportService creates a new report service.
func NewReportService(folders reportFolderRepository, assessments reportAssessmentRepository, exporter *export.PDFExporter, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{folders: folders, assessments: assessments, exporter: exporter, logger: logger}
}

// FolderGradeSheet renders the assessed submissions of a folder as a PDF and
// returns the bytes with a suggested file name.
func (s *ReportService) FolderGradeSheet(ctx context.Context, folderID string) ([]byte, string, error) {
	folder, err := s.folders.FindByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "folder not found")
		}
		return nil, "", mapStoreError(err, "failed to load folder")
	}

	rows, err := s.assessments.GradeSheet(ctx, folderID)
	if err != nil {
		return nil, "", mapStoreError(err, "failed to load grade sheet")
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "File", "Score", "Approved"},
	}
	for _, row := range rows {
		approved := "no"
		if row.IsApproved {
			approved = "yes"
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":  row.StudentName,
			"File":     row.FileName,
			"Score":    fmt.Sprintf("%.1f", row.Score),
			"Approved": approved,
		})
	}

	pdf, err := s.exporter.Render(dataset, fmt.Sprintf("Grade sheet - %s", folder.Name))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render grade sheet")
	}

	return pdf, fmt.Sprintf("grades-%s.pdf", folder.ID), nil
}
