package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HumNoi1/subjective-assessment-api/internal/service"
	"github.com/HumNoi1/subjective-assessment-api/pkg/response"
)

// ReportHandler serves rendered reports.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// FolderGrades godoc
// @Summary Download a folder grade sheet as PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path string true "Folder ID"
// @Success 200 {file} binary
// @Router /reports/folders/{id}/grades.pdf [get]
func (h *ReportHandler) FolderGrades(c *gin.Context) {
	pdf, filename, err := h.service.FolderGradeSheet(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
