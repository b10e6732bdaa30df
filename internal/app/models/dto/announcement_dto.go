package dto

import (
	"time"

	"github.com/demir/classhub/internal/app/models"
)

// --- Request DTOs ---

// CreateAnnouncementRequest represents announcement creation data
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,min=2,max=200"`
	Content  string `json:"content" binding:"required,max=10000"`
	IsPinned bool   `json:"isPinned"`
}

// UpdateAnnouncementRequest represents announcement update data
type UpdateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,min=2,max=200"`
	Content  string `json:"content" binding:"required,max=10000"`
	IsPinned bool   `json:"isPinned"`
}

// --- Response DTOs ---

// AnnouncementResponse represents one announcement
type AnnouncementResponse struct {
	ID          int64     `json:"id"`
	ClassID     int64     `json:"classId"`
	TeacherID   int64     `json:"teacherId"`
	TeacherName string    `json:"teacherName,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsPinned    bool      `json:"isPinned"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AnnouncementListResponse represents a paginated list of announcements
type AnnouncementListResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	Pagination    PaginationInfo         `json:"pagination"`
}

// FromAnnouncement converts an announcement model to its response DTO
func FromAnnouncement(announcement *models.Announcement) AnnouncementResponse {
	if announcement == nil {
		return AnnouncementResponse{}
	}
	resp := AnnouncementResponse{
		ID:        announcement.ID,
		ClassID:   announcement.ClassID,
		TeacherID: announcement.TeacherID,
		Title:     announcement.Title,
		Content:   announcement.Content,
		IsPinned:  announcement.IsPinned,
		CreatedAt: announcement.CreatedAt,
		UpdatedAt: announcement.UpdatedAt,
	}
	if announcement.Teacher != nil {
		resp.TeacherName = announcement.Teacher.FullName()
	}
	return resp
}
