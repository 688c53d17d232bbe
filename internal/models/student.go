package models

import "time"

// Student belongs to a class and submits answers.
type Student struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ClassID   string    `db:"class_id" json:"class_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// StudentFilter captures supported filters for listing students.
type StudentFilter struct {
	ClassID string
}
