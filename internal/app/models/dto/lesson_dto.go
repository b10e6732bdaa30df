package dto

import (
	"time"

	"github.com/demir/classhub/internal/app/models"
)

// --- Request DTOs ---

// CreateLessonRequest represents lesson creation data
type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200" example:"Linear equations"`
	Content     string `json:"content" binding:"max=20000"`
	OrderNum    int    `json:"orderNum" binding:"min=0"`
	IsPublished *bool  `json:"isPublished"` // defaults to true when omitted
}

// UpdateLessonRequest represents lesson update data
type UpdateLessonRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Content     string `json:"content" binding:"max=20000"`
	OrderNum    int    `json:"orderNum" binding:"min=0"`
	IsPublished *bool  `json:"isPublished" binding:"required"`
}

// --- Response DTOs ---

// FileResponse represents an uploaded file attachment
type FileResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	FileSize  int64     `json:"fileSize"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

// LessonResponse represents basic lesson information
type LessonResponse struct {
	ID          int64     `json:"id"`
	ClassID     int64     `json:"classId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	OrderNum    int       `json:"orderNum"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LessonDetailResponse extends LessonResponse with attachments and questions
type LessonDetailResponse struct {
	LessonResponse
	Files     []FileResponse     `json:"files"`
	Questions []QuestionResponse `json:"questions"`
}

// LessonListResponse represents a paginated list of lessons
type LessonListResponse struct {
	Lessons    []LessonResponse `json:"lessons"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromLesson converts a lesson model to its response DTO
func FromLesson(lesson *models.Lesson) LessonResponse {
	if lesson == nil {
		return LessonResponse{}
	}
	return LessonResponse{
		ID:          lesson.ID,
		ClassID:     lesson.ClassID,
		Title:       lesson.Title,
		Content:     lesson.Content,
		OrderNum:    lesson.OrderNum,
		IsPublished: lesson.IsPublished,
		CreatedAt:   lesson.CreatedAt,
		UpdatedAt:   lesson.UpdatedAt,
	}
}

// FromFile converts a file model to its response DTO
func FromFile(file *models.File) FileResponse {
	if file == nil {
		return FileResponse{}
	}
	return FileResponse{
		ID:        file.ID,
		FileName:  file.FileName,
		FileURL:   file.FilePath,
		FileSize:  file.FileSize,
		MimeType:  file.MimeType,
		CreatedAt: file.CreatedAt,
	}
}

// FromLessonDetail converts a lesson with its files and questions
func FromLessonDetail(lesson *models.Lesson) LessonDetailResponse {
	detail := LessonDetailResponse{
		LessonResponse: FromLesson(lesson),
		Files:          make([]FileResponse, 0, len(lesson.Files)),
		Questions:      make([]QuestionResponse, 0, len(lesson.Questions)),
	}
	for _, f := range lesson.Files {
		detail.Files = append(detail.Files, FromFile(f))
	}
	for _, q := range lesson.Questions {
		detail.Questions = append(detail.Questions, FromQuestion(q))
	}
	return detail
}
