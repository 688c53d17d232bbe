package service

import (
	"go.uber.org/zap"

	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/extract"
	"github.com/HumNoi1/subjective-assessment-api/pkg/storage"
)

// StoredFile describes an uploaded file and any extracted text.
type StoredFile struct {
	Path          string `json:"path"`
	Size          int    `json:"size"`
	ExtractedText string `json:"extracted_text,omitempty"`
}

// StorageService wraps the file store with upload-time text extraction.
type StorageService struct {
	store  *storage.LocalStorage
	logger *zap.Logger
}

// NewStorageService creates a new storage service.
func NewStorageService(store *storage.LocalStorage, logger *zap.Logger) *StorageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageService{store: store, logger: logger}
}

// Upload saves the payload and runs best-effort text extraction so callers
// can reuse the text as submission or answer-key content.
func (s *StorageService) Upload(bucket, filePath string, data []byte) (*StoredFile, error) {
	path, err := s.store.Save(bucket, filePath, data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, err.Error())
	}

	return &StoredFile{
		Path:          path,
		Size:          len(data),
		ExtractedText: extract.Text(data),
	}, nil
}

// Delete removes a stored file. The store's error is surfaced verbatim; there
// is no existence pre-check and no retry.
func (s *StorageService) Delete(bucket, filePath string) error {
	if err := s.store.Delete(bucket, filePath); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, err.Error())
	}
	return nil
}
