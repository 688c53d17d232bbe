package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/internal/service"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/response"
)

// FolderHandler handles submission folder endpoints.
type FolderHandler struct {
	service *service.FolderService
}

// NewFolderHandler constructs a folder handler.
func NewFolderHandler(svc *service.FolderService) *FolderHandler {
	return &FolderHandler{service: svc}
}

// List godoc
// @Summary List folders
// @Tags Folders
// @Produce json
// @Param teacherId query string false "Filter by teacher"
// @Param subjectId query string false "Filter by subject"
// @Success 200 {object} response.Envelope
// @Router /folders [get]
func (h *FolderHandler) List(c *gin.Context) {
	filter := models.FolderFilter{
		TeacherID: c.Query("teacherId"),
		SubjectID: c.Query("subjectId"),
	}

	folders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, folders)
}

// Create godoc
// @Summary Create folder
// @Tags Folders
// @Accept json
// @Produce json
// @Param payload body service.CreateFolderRequest true "Folder payload"
// @Success 201 {object} response.Envelope
// @Router /folders [post]
func (h *FolderHandler) Create(c *gin.Context) {
	var req service.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	folder, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, folder)
}
