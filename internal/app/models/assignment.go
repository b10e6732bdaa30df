package models

import "time"

// Assignment represents graded work posted to a class with a due date
type Assignment struct {
	ID                  int64     `json:"id" db:"id" example:"1"`
	ClassID             int64     `json:"classId" db:"class_id" example:"1"`
	Title               string    `json:"title" db:"title" example:"Problem set 3"`
	Description         string    `json:"description" db:"description"`
	DueDate             time.Time `json:"dueDate" db:"due_date" example:"2024-05-01T23:59:00Z"`
	MaxPoints           int32     `json:"maxPoints" db:"max_points" example:"100"` // always >= 0
	AllowLateSubmission bool      `json:"allowLateSubmission" db:"allow_late_submission"`
	IsPublished         bool      `json:"isPublished" db:"is_published"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`

	// Class is populated by queries that join the owning class
	Class *Class `json:"class,omitempty"`

	// Aggregates filled by listing queries
	SubmissionCount int64 `json:"submissionCount,omitempty"`

	// MySubmission carries the requesting student's submission, if any
	MySubmission *Submission `json:"mySubmission,omitempty"`
}

// IsPastDue reports whether the due date has passed at the given instant
func (a *Assignment) IsPastDue(now time.Time) bool {
	return now.After(a.DueDate)
}

// AcceptsResubmission reports whether a second submission may replace an
// existing one. Governed by the late-submission flag; a first submission
// after the due date is always accepted and marked late.
func (a *Assignment) AcceptsResubmission() bool {
	return a.AllowLateSubmission
}

// ValidGradePoints reports whether a point award is inside [0, maxPoints]
func ValidGradePoints(points, maxPoints int32) bool {
	return points >= 0 && points <= maxPoints
}
