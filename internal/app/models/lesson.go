package models

import "time"

// Lesson represents a content fragment posted to a class
type Lesson struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	ClassID     int64     `json:"classId" db:"class_id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Linear equations"`
	Content     string    `json:"content" db:"content"`
	OrderNum    int       `json:"orderNum" db:"order_num" example:"1"` // position within the class
	IsPublished bool      `json:"isPublished" db:"is_published" example:"true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Files     []*File     `json:"files,omitempty"`
	Questions []*Question `json:"questions,omitempty"`
}

// Question represents a student question attached to a lesson
type Question struct {
	ID        int64     `json:"id" db:"id"`
	LessonID  int64     `json:"lessonId" db:"lesson_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Student *User   `json:"student,omitempty"`
	Answer  *Answer `json:"answer,omitempty"` // at most one
}

// Answer represents the teacher's single answer to a question
type Answer struct {
	ID         int64     `json:"id" db:"id"`
	QuestionID int64     `json:"questionId" db:"question_id"`
	TeacherID  int64     `json:"teacherId" db:"teacher_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Teacher *User `json:"teacher,omitempty"`
}
