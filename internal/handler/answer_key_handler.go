package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/internal/service"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/response"
)

// AnswerKeyHandler handles assignment (answer key) endpoints.
type AnswerKeyHandler struct {
	service *service.AnswerKeyService
}

// NewAnswerKeyHandler constructs an answer key handler.
func NewAnswerKeyHandler(svc *service.AnswerKeyService) *AnswerKeyHandler {
	return &AnswerKeyHandler{service: svc}
}

// List godoc
// @Summary List assignments
// @Tags Assignments
// @Produce json
// @Param subjectId query string false "Filter by subject"
// @Param termId query string false "Filter by semester"
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *AnswerKeyHandler) List(c *gin.Context) {
	filter := models.AnswerKeyFilter{
		SubjectID: c.Query("subjectId"),
		TermID:    c.Query("termId"),
	}

	keys, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, keys)
}

// Get godoc
// @Summary Get assignment by id
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id} [get]
func (h *AnswerKeyHandler) Get(c *gin.Context) {
	key, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, key)
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.CreateAnswerKeyRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /assignments [post]
func (h *AnswerKeyHandler) Create(c *gin.Context) {
	var req service.CreateAnswerKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	key, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, key)
}
