package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/internal/service"
)

type assessmentRepoMock struct {
	bySubmission    *models.Assessment
	bySubmissionErr error
}

func (m *assessmentRepoMock) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error) {
	return nil, nil
}

func (m *assessmentRepoMock) FindBySubmission(ctx context.Context, submissionID string) (*models.Assessment, error) {
	if m.bySubmissionErr != nil {
		return nil, m.bySubmissionErr
	}
	return m.bySubmission, nil
}

func (m *assessmentRepoMock) Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error) {
	return assessment, nil
}

func (m *assessmentRepoMock) Approve(ctx context.Context, id, teacherID string) (*models.Assessment, error) {
	return &models.Assessment{ID: id, IsApproved: true}, nil
}

func TestSubmissionHandlerAssessmentMissingAnswersOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assessments := service.NewAssessmentService(&assessmentRepoMock{bySubmissionErr: sql.ErrNoRows}, nil, nil)
	handler := NewSubmissionHandler(nil, assessments)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/submissions/sub1/assessment", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sub1"}}

	handler.Assessment(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.AssessmentLookup `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Exists)
	assert.Nil(t, envelope.Data.Assessment)
}

func TestSubmissionHandlerAssessmentFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &assessmentRepoMock{bySubmission: &models.Assessment{ID: "a1", SubmissionID: "sub1", Score: 88}}
	assessments := service.NewAssessmentService(repo, nil, nil)
	handler := NewSubmissionHandler(nil, assessments)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/submissions/sub1/assessment", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sub1"}}

	handler.Assessment(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.AssessmentLookup `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Exists)
	require.NotNil(t, envelope.Data.Assessment)
	assert.InDelta(t, 88.0, envelope.Data.Assessment.Score, 0.001)
}
