package models

import "time"

// Assessment is the scored evaluation of one submission. ApprovedBy is only
// set once a teacher explicitly approves the score.
type Assessment struct {
	ID           string    `db:"id" json:"id"`
	SubmissionID string    `db:"submission_id" json:"submission_id"`
	Score        float64   `db:"score" json:"score"`
	Feedback     string    `db:"feedback" json:"feedback"`
	IsApproved   bool      `db:"is_approved" json:"is_approved"`
	ApprovedBy   *string   `db:"approved_by" json:"approved_by,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AssessmentFilter captures supported filters for listing assessments.
type AssessmentFilter struct {
	AnswerKeyID string
	Approved    *bool
}

// AssessmentLookup wraps the to-one fetch for a submission: a missing
// assessment is a normal outcome, not an error.
type AssessmentLookup struct {
	Exists     bool        `json:"exists"`
	Assessment *Assessment `json:"assessment,omitempty"`
}
