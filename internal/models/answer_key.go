package models

import "time"

// AnswerKey is the reference solution graded submissions are compared with.
// It is exposed over HTTP as an "assignment".
type AnswerKey struct {
	ID        string    `db:"id" json:"id"`
	FileName  string    `db:"file_name" json:"file_name"`
	Content   string    `db:"content" json:"content"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	TermID    string    `db:"term_id" json:"term_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AnswerKeyFilter captures supported filters for listing answer keys.
type AnswerKeyFilter struct {
	SubjectID string
	TermID    string
}
