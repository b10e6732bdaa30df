package models

import "time"

// Class represents a course instance owned by one teacher, joined via code
type Class struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	TeacherID   int64     `json:"teacherId" db:"teacher_id" example:"3"`
	Name        string    `json:"name" db:"name" example:"Algebra I"`
	Subject     string    `json:"subject" db:"subject" example:"Mathematics"`
	Description string    `json:"description" db:"description" example:"Introductory algebra for 9th grade"`
	Code        string    `json:"code" db:"code" example:"X7K2P9"` // 6-char join code, unique across all classes
	IsActive    bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Teacher *User `json:"teacher,omitempty"`

	// Aggregates filled by detail queries
	StudentCount    int64 `json:"studentCount,omitempty"`
	LessonCount     int64 `json:"lessonCount,omitempty"`
	AssignmentCount int64 `json:"assignmentCount,omitempty"`
}

// Enrollment represents a student's membership in a class
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	ClassID    int64     `json:"classId" db:"class_id"`
	IsActive   bool      `json:"isActive" db:"is_active"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`

	// Related entities
	Student *User  `json:"student,omitempty"`
	Class   *Class `json:"class,omitempty"`
}
