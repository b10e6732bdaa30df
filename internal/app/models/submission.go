package models

import "time"

// SubmissionStatus classifies a submission against its assignment's due date
type SubmissionStatus string

const (
	SubmissionOnTime SubmissionStatus = "ON_TIME"
	SubmissionLate   SubmissionStatus = "LATE"
	SubmissionGraded SubmissionStatus = "GRADED" // terminal, set only by grading
)

// ClassifySubmission derives the status for a submission saved at submittedAt
// against the assignment due date. Submitting exactly at the due date counts
// as on time.
func ClassifySubmission(submittedAt, dueDate time.Time) SubmissionStatus {
	if submittedAt.After(dueDate) {
		return SubmissionLate
	}
	return SubmissionOnTime
}

// Submission represents a student's uploaded artifact for an assignment
type Submission struct {
	ID           int64            `json:"id" db:"id"`
	AssignmentID int64            `json:"assignmentId" db:"assignment_id"`
	StudentID    int64            `json:"studentId" db:"student_id"`
	FileID       int64            `json:"fileId" db:"file_id"`
	Comment      string           `json:"comment" db:"comment"`
	Status       SubmissionStatus `json:"status" db:"status"`
	Points       *int32           `json:"points,omitempty" db:"points"` // nil until graded
	Feedback     string           `json:"feedback" db:"feedback"`
	SubmittedAt  time.Time        `json:"submittedAt" db:"submitted_at"`
	GradedAt     *time.Time       `json:"gradedAt,omitempty" db:"graded_at"` // nil until graded

	// Related entities
	Student    *User       `json:"student,omitempty"`
	File       *File       `json:"file,omitempty"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

// IsGraded reports whether the submission carries a grade
func (s *Submission) IsGraded() bool {
	return s.Status == SubmissionGraded && s.Points != nil
}

// Resubmit replaces the submission's artifact in place: new file, comment and
// submission time, with the status re-classified against the due date. Any
// grade already given is cleared so the replacement gets graded fresh.
func (s *Submission) Resubmit(fileID int64, comment string, submittedAt, dueDate time.Time) {
	s.FileID = fileID
	s.Comment = comment
	s.SubmittedAt = submittedAt
	s.Status = ClassifySubmission(submittedAt, dueDate)
	s.Points = nil
	s.Feedback = ""
	s.GradedAt = nil
}
