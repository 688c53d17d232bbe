package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HumNoi1/subjective-assessment-api/internal/service"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/response"
)

// StorageHandler handles file storage endpoints.
type StorageHandler struct {
	service *service.StorageService
}

// NewStorageHandler constructs a storage handler.
func NewStorageHandler(svc *service.StorageService) *StorageHandler {
	return &StorageHandler{service: svc}
}

type deleteFileRequest struct {
	Bucket   string `json:"bucket" binding:"required"`
	FilePath string `json:"file_path" binding:"required"`
}

// Upload godoc
// @Summary Upload a file
// @Description Accepts a multipart file plus bucket and path fields. PDF text
// @Description is extracted on upload so the caller can reuse it as content.
// @Tags Storage
// @Accept multipart/form-data
// @Produce json
// @Param bucket formData string true "Bucket name"
// @Param path formData string true "Destination path inside the bucket"
// @Param file formData file true "File content"
// @Success 201 {object} response.Envelope
// @Router /storage/upload [post]
func (h *StorageHandler) Upload(c *gin.Context) {
	bucket := c.PostForm("bucket")
	path := c.PostForm("path")
	if bucket == "" || path == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "bucket and path are required"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}

	stored, err := h.service.Upload(bucket, path, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, stored)
}

// DeleteFile godoc
// @Summary Delete a stored file
// @Tags Storage
// @Accept json
// @Produce json
// @Param payload body deleteFileRequest true "File location"
// @Success 200 {object} response.Envelope
// @Router /storage/file [delete]
func (h *StorageHandler) DeleteFile(c *gin.Context) {
	var req deleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.service.Delete(req.Bucket, req.FilePath); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "file deleted"})
}
