package models

import "time"

// Folder groups student submissions within a subject.
type Folder struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FolderFilter captures supported filters for listing folders.
type FolderFilter struct {
	TeacherID string
	SubjectID string
}
