package models

import "time"

// Submission is one student answer uploaded against an answer key.
type Submission struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	AnswerKeyID string    `db:"answer_key_id" json:"answer_key_id"`
	FolderID    string    `db:"folder_id" json:"folder_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	Content     string    `db:"content" json:"content"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// SubmissionFilter captures supported filters for listing submissions.
type SubmissionFilter struct {
	StudentID   string
	AnswerKeyID string
	FolderID    string
}
