package dto

import (
	"time"

	"github.com/demir/classhub/internal/app/models"
)

// --- Request DTOs ---

// CreateClassRequest represents class creation data
type CreateClassRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"Algebra I"`
	Subject     string `json:"subject" binding:"required,min=2,max=100" example:"Mathematics"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateClassRequest represents class update data; the join code is immutable
type UpdateClassRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Subject     string `json:"subject" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// JoinClassRequest carries the join code a student submits
type JoinClassRequest struct {
	Code string `json:"code" binding:"required,joincode" example:"X7K2P9"`
}

// --- Response DTOs ---

// ClassResponse represents basic class information
type ClassResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	IsActive    bool      `json:"isActive"`
	TeacherID   int64     `json:"teacherId"`
	TeacherName string    `json:"teacherName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ClassDetailResponse extends ClassResponse with aggregate counts
type ClassDetailResponse struct {
	ClassResponse
	StudentCount    int64 `json:"studentCount"`
	LessonCount     int64 `json:"lessonCount"`
	AssignmentCount int64 `json:"assignmentCount"`
}

// ClassListResponse represents a paginated list of classes
type ClassListResponse struct {
	Classes    []ClassResponse `json:"classes"`
	Pagination PaginationInfo  `json:"pagination"`
}

// EnrolledStudentResponse represents one roster entry
type EnrolledStudentResponse struct {
	StudentID  int64     `json:"studentId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// StudentListResponse represents a paginated class roster
type StudentListResponse struct {
	Students   []EnrolledStudentResponse `json:"students"`
	Pagination PaginationInfo            `json:"pagination"`
}

// FromClass converts a class model to its response DTO
func FromClass(class *models.Class) ClassResponse {
	if class == nil {
		return ClassResponse{}
	}

	resp := ClassResponse{
		ID:          class.ID,
		Name:        class.Name,
		Subject:     class.Subject,
		Description: class.Description,
		Code:        class.Code,
		IsActive:    class.IsActive,
		TeacherID:   class.TeacherID,
		CreatedAt:   class.CreatedAt,
		UpdatedAt:   class.UpdatedAt,
	}
	if class.Teacher != nil {
		resp.TeacherName = class.Teacher.FullName()
	}
	return resp
}

// FromClassDetail converts a class model with aggregates to a detail DTO
func FromClassDetail(class *models.Class) ClassDetailResponse {
	return ClassDetailResponse{
		ClassResponse:   FromClass(class),
		StudentCount:    class.StudentCount,
		LessonCount:     class.LessonCount,
		AssignmentCount: class.AssignmentCount,
	}
}

// FromEnrollment converts an enrollment with its student to a roster entry
func FromEnrollment(enrollment *models.Enrollment) EnrolledStudentResponse {
	resp := EnrolledStudentResponse{
		StudentID:  enrollment.StudentID,
		EnrolledAt: enrollment.EnrolledAt,
	}
	if enrollment.Student != nil {
		resp.FirstName = enrollment.Student.FirstName
		resp.LastName = enrollment.Student.LastName
		resp.Email = enrollment.Student.Email
	}
	return resp
}
