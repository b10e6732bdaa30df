package dto

import (
	"time"

	"github.com/demir/classhub/internal/app/models"
)

// --- Request DTOs ---

// CreateSubmissionRequest carries the optional comment of a multipart
// submission upload; the file itself arrives as form data.
type CreateSubmissionRequest struct {
	Comment string `form:"comment" binding:"max=2000"`
}

// GradeSubmissionRequest represents grading input for a submission
type GradeSubmissionRequest struct {
	Points   *int32 `json:"points" binding:"required,min=0" example:"85"`
	Feedback string `json:"feedback" binding:"max=5000"`
}

// --- Response DTOs ---

// SubmissionResponse represents one submission
type SubmissionResponse struct {
	ID           int64         `json:"id"`
	AssignmentID int64         `json:"assignmentId"`
	StudentID    int64         `json:"studentId"`
	StudentName  string        `json:"studentName,omitempty"`
	File         *FileResponse `json:"file,omitempty"`
	Comment      string        `json:"comment,omitempty"`
	Status       string        `json:"status" enums:"ON_TIME,LATE,GRADED"`
	Points       *int32        `json:"points,omitempty"`
	Feedback     string        `json:"feedback,omitempty"`
	SubmittedAt  time.Time     `json:"submittedAt"`
	GradedAt     *time.Time    `json:"gradedAt,omitempty"`
}

// SubmissionListResponse represents a paginated list of submissions
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// FromSubmission converts a submission model to its response DTO
func FromSubmission(submission *models.Submission) SubmissionResponse {
	if submission == nil {
		return SubmissionResponse{}
	}

	resp := SubmissionResponse{
		ID:           submission.ID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		Comment:      submission.Comment,
		Status:       string(submission.Status),
		Points:       submission.Points,
		Feedback:     submission.Feedback,
		SubmittedAt:  submission.SubmittedAt,
		GradedAt:     submission.GradedAt,
	}
	if submission.Student != nil {
		resp.StudentName = submission.Student.FullName()
	}
	if submission.File != nil {
		file := FromFile(submission.File)
		resp.File = &file
	}
	return resp
}
