package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
)

const folderColumns = "id, name, subject_id, teacher_id, created_at"

// FolderRepository handles persistence for submission folders.
type FolderRepository struct {
	db *sqlx.DB
}

// NewFolderRepository creates a new repository instance.
func NewFolderRepository(db *sqlx.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// List returns folders matching the filter, newest first.
func (r *FolderRepository) List(ctx context.Context, filter models.FolderFilter) ([]models.Folder, error) {
	query := fmt.Sprintf("SELECT %s FROM folders WHERE 1=1", folderColumns)
	var args []interface{}

	if filter.TeacherID != "" {
		query += fmt.Sprintf(" AND teacher_id = $%d", len(args)+1)
		args = append(args, filter.TeacherID)
	}
	if filter.SubjectID != "" {
		query += fmt.Sprintf(" AND subject_id = $%d", len(args)+1)
		args = append(args, filter.SubjectID)
	}
	query += " ORDER BY created_at DESC"

	var folders []models.Folder
	if err := r.db.SelectContext(ctx, &folders, query, args...); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

// FindByID returns a folder by id.
func (r *FolderRepository) FindByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf("SELECT %s FROM folders WHERE id = $1", folderColumns)
	var folder models.Folder
	if err := r.db.GetContext(ctx, &folder, query, id); err != nil {
		return nil, err
	}
	return &folder, nil
}

// Create inserts a folder and returns the stored row with its assigned id.
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	query := fmt.Sprintf("INSERT INTO folders (name, subject_id, teacher_id) VALUES ($1, $2, $3) RETURNING %s", folderColumns)
	var created models.Folder
	if err := r.db.GetContext(ctx, &created, query, folder.Name, folder.SubjectID, folder.TeacherID); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return &created, nil
}
