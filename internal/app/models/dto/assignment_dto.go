package dto

import (
	"time"

	"github.com/demir/classhub/internal/app/models"
)

// --- Request DTOs ---

// CreateAssignmentRequest represents assignment creation data
type CreateAssignmentRequest struct {
	Title               string    `json:"title" binding:"required,min=2,max=200" example:"Problem set 3"`
	Description         string    `json:"description" binding:"max=10000"`
	DueDate             time.Time `json:"dueDate" binding:"required" example:"2024-05-01T23:59:00Z"`
	MaxPoints           *int32    `json:"maxPoints" binding:"required,min=0" example:"100"`
	AllowLateSubmission *bool     `json:"allowLateSubmission"` // defaults to true when omitted
	IsPublished         *bool     `json:"isPublished"`         // defaults to true when omitted
}

// UpdateAssignmentRequest represents assignment update data
type UpdateAssignmentRequest struct {
	Title               string    `json:"title" binding:"required,min=2,max=200"`
	Description         string    `json:"description" binding:"max=10000"`
	DueDate             time.Time `json:"dueDate" binding:"required"`
	MaxPoints           *int32    `json:"maxPoints" binding:"required,min=0"`
	AllowLateSubmission *bool     `json:"allowLateSubmission" binding:"required"`
	IsPublished         *bool     `json:"isPublished" binding:"required"`
}

// --- Response DTOs ---

// AssignmentResponse represents basic assignment information
type AssignmentResponse struct {
	ID                  int64               `json:"id"`
	ClassID             int64               `json:"classId"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	DueDate             time.Time           `json:"dueDate"`
	MaxPoints           int32               `json:"maxPoints"`
	AllowLateSubmission bool                `json:"allowLateSubmission"`
	IsPublished         bool                `json:"isPublished"`
	SubmissionCount     int64               `json:"submissionCount,omitempty"`
	MySubmission        *SubmissionResponse `json:"mySubmission,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// AssignmentListResponse represents a paginated list of assignments
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// FromAssignment converts an assignment model to its response DTO
func FromAssignment(assignment *models.Assignment) AssignmentResponse {
	if assignment == nil {
		return AssignmentResponse{}
	}

	resp := AssignmentResponse{
		ID:                  assignment.ID,
		ClassID:             assignment.ClassID,
		Title:               assignment.Title,
		Description:         assignment.Description,
		DueDate:             assignment.DueDate,
		MaxPoints:           assignment.MaxPoints,
		AllowLateSubmission: assignment.AllowLateSubmission,
		IsPublished:         assignment.IsPublished,
		SubmissionCount:     assignment.SubmissionCount,
		CreatedAt:           assignment.CreatedAt,
		UpdatedAt:           assignment.UpdatedAt,
	}
	if assignment.MySubmission != nil {
		sub := FromSubmission(assignment.MySubmission)
		resp.MySubmission = &sub
	}
	return resp
}
