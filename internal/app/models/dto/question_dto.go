package dto

import (
	"time"

	"github.com/demir/classhub/internal/app/models"
)

// --- Request DTOs ---

// AskQuestionRequest represents a student question on a lesson
type AskQuestionRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// AnswerQuestionRequest represents the teacher's answer to a question
type AnswerQuestionRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// --- Response DTOs ---

// AnswerResponse represents the single answer to a question
type AnswerResponse struct {
	ID          int64     `json:"id"`
	TeacherID   int64     `json:"teacherId"`
	TeacherName string    `json:"teacherName,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

// QuestionResponse represents a question with its answer if present
type QuestionResponse struct {
	ID          int64           `json:"id"`
	LessonID    int64           `json:"lessonId"`
	StudentID   int64           `json:"studentId"`
	StudentName string          `json:"studentName,omitempty"`
	Content     string          `json:"content"`
	Answer      *AnswerResponse `json:"answer,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// QuestionListResponse represents a paginated list of questions
type QuestionListResponse struct {
	Questions  []QuestionResponse `json:"questions"`
	Pagination PaginationInfo     `json:"pagination"`
}

// FromQuestion converts a question model to its response DTO
func FromQuestion(question *models.Question) QuestionResponse {
	if question == nil {
		return QuestionResponse{}
	}

	resp := QuestionResponse{
		ID:        question.ID,
		LessonID:  question.LessonID,
		StudentID: question.StudentID,
		Content:   question.Content,
		CreatedAt: question.CreatedAt,
	}
	if question.Student != nil {
		resp.StudentName = question.Student.FullName()
	}
	if question.Answer != nil {
		answer := &AnswerResponse{
			ID:        question.Answer.ID,
			TeacherID: question.Answer.TeacherID,
			Content:   question.Answer.Content,
			CreatedAt: question.Answer.CreatedAt,
		}
		if question.Answer.Teacher != nil {
			answer.TeacherName = question.Answer.Teacher.FullName()
		}
		resp.Answer = answer
	}
	return resp
}
