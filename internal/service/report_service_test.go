package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/internal/repository"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/export"
)

type mockReportFolders struct {
	folder *models.Folder
	err    error
}

func (m *mockReportFolders) FindByID(ctx context.Context, id string) (*models.Folder, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.folder, nil
}

type mockReportAssessments struct {
	rows []repository.GradeRow
}

func (m *mockReportAssessments) GradeSheet(ctx context.Context, folderID string) ([]repository.GradeRow, error) {
	return m.rows, nil
}

func TestReportServiceFolderGradeSheet(t *testing.T) {
	folders := &mockReportFolders{folder: &models.Folder{ID: "f1", Name: "Midterm"}}
	assessments := &mockReportAssessments{rows: []repository.GradeRow{
		{StudentName: "Alice", FileName: "alice.pdf", Score: 91, IsApproved: true},
		{StudentName: "Bob", FileName: "bob.pdf", Score: 68.5},
	}}
	svc := NewReportService(folders, assessments, export.NewPDFExporter(), zap.NewNop())

	pdf, filename, err := svc.FolderGradeSheet(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "grades-f1.pdf", filename)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestReportServiceFolderGradeSheetMissingFolder(t *testing.T) {
	folders := &mockReportFolders{err: sql.ErrNoRows}
	svc := NewReportService(folders, &mockReportAssessments{}, export.NewPDFExporter(), zap.NewNop())

	_, _, err := svc.FolderGradeSheet(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
