package models

import "time"

// Announcement represents a teacher broadcast to a class, pinned-first ordering
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	ClassID   int64     `json:"classId" db:"class_id"`
	TeacherID int64     `json:"teacherId" db:"teacher_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	IsPinned  bool      `json:"isPinned" db:"is_pinned"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Teacher is populated by queries that join the author
	Teacher *User `json:"teacher,omitempty"`
}
