package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumNoi1/subjective-assessment-api/internal/service"
)

func TestAssessmentHandlerListRejectsBadApprovedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAssessmentHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/assessments?approved=maybe", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "approved must be a boolean")
}

func TestAssessmentHandlerApprove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewAssessmentService(&assessmentRepoMock{}, nil, nil)
	handler := NewAssessmentHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := []byte(`{"teacher_id": "t1"}`)
	req, _ := http.NewRequest(http.MethodPut, "/assessments/a1/approve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "a1"}}

	handler.Approve(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_approved":true`)
}

func TestAssessmentHandlerApproveInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAssessmentHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/assessments/a1/approve", bytes.NewReader([]byte(`broken`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "a1"}}

	handler.Approve(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
