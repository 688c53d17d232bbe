package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HumNoi1/subjective-assessment-api/internal/service"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/response"
)

// GradingHandler handles auto-grading and vector search endpoints.
type GradingHandler struct {
	service *service.GradingService
	metrics *service.MetricsService
}

// NewGradingHandler constructs a grading handler.
func NewGradingHandler(svc *service.GradingService, metrics *service.MetricsService) *GradingHandler {
	return &GradingHandler{service: svc, metrics: metrics}
}

type autoGradeRequest struct {
	AssignmentID string `json:"assignment_id" binding:"required"`
	SubmissionID string `json:"submission_id" binding:"required"`
}

type searchRequest struct {
	AssignmentID string `json:"assignment_id" binding:"required"`
	QueryText    string `json:"query_text" binding:"required"`
	Limit        uint64 `json:"limit"`
}

type compareRequest struct {
	AssignmentID string `json:"assignment_id"`
	SubmissionID string `json:"submission_id"`
	Limit        uint64 `json:"limit"`
}

// AutoGrade godoc
// @Summary Auto-grade a submission against its assignment
// @Tags Grading
// @Accept json
// @Produce json
// @Param payload body autoGradeRequest true "Grading request"
// @Success 200 {object} response.Envelope
// @Router /grading/auto [post]
func (h *GradingHandler) AutoGrade(c *gin.Context) {
	var req autoGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "assignment_id and submission_id are required"))
		return
	}

	assessment, err := h.service.AutoGrade(c.Request.Context(), req.AssignmentID, req.SubmissionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveGradingRun()
	}
	response.JSON(c, http.StatusOK, assessment)
}

// Search godoc
// @Summary Search indexed submissions by free-form text
// @Tags Grading
// @Accept json
// @Produce json
// @Param payload body searchRequest true "Search request"
// @Success 200 {object} response.Envelope
// @Router /embeddings/search [post]
func (h *GradingHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "assignment_id and query_text are required"))
		return
	}

	result, err := h.service.SearchSimilar(c.Request.Context(), req.AssignmentID, req.QueryText, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveVectorSearch()
	}
	response.JSON(c, http.StatusOK, result)
}

// Compare godoc
// @Summary Rank a submission against its indexed peers
// @Tags Grading
// @Accept json
// @Produce json
// @Param payload body compareRequest true "Comparison request"
// @Success 200 {object} response.Envelope
// @Router /vector-db/compare [post]
func (h *GradingHandler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.AssignmentID == "" || req.SubmissionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "assignment_id and submission_id are required"))
		return
	}

	result, err := h.service.Compare(c.Request.Context(), req.AssignmentID, req.SubmissionID, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveVectorSearch()
	}
	response.JSON(c, http.StatusOK, result)
}

// Check godoc
// @Summary Vector service diagnostics
// @Tags Grading
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /vector-db/check [get]
func (h *GradingHandler) Check(c *gin.Context) {
	diag, err := h.service.CheckVectorStore(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, diag)
}
