package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage persists files on disk, one directory per bucket.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./storage"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save writes the given bytes under bucket/path and returns the stored path.
func (s *LocalStorage) Save(bucket, filePath string, data []byte) (string, error) {
	path, err := s.resolve(bucket, filePath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare bucket directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return filepath.Join(bucket, filePath), nil
}

// SaveStream copies from reader into the target file.
func (s *LocalStorage) SaveStream(bucket, filePath string, r io.Reader) (string, error) {
	path, err := s.resolve(bucket, filePath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare bucket directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write stream: %w", err)
	}
	return filepath.Join(bucket, filePath), nil
}

// Open returns a read-only handle for the stored file.
func (s *LocalStorage) Open(bucket, filePath string) (*os.File, error) {
	path, err := s.resolve(bucket, filePath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file. The store's own error is propagated verbatim,
// including "no such file" - callers decide what that means.
func (s *LocalStorage) Delete(bucket, filePath string) error {
	path, err := s.resolve(bucket, filePath)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// resolve joins bucket and path under the base dir, rejecting traversal.
func (s *LocalStorage) resolve(bucket, filePath string) (string, error) {
	if bucket == "" || filePath == "" {
		return "", fmt.Errorf("bucket and file path are required")
	}
	joined := filepath.Join(s.baseDir, bucket, filepath.Clean("/"+filePath))
	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve base dir: %w", err)
	}
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolve file path: %w", err)
	}
	if !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("file path escapes storage root")
	}
	return abs, nil
}
