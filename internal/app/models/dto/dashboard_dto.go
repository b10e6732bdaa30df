package dto

import "time"

// ClassSummary is one class row on the teacher dashboard
type ClassSummary struct {
	ClassID         int64  `json:"classId"`
	Name            string `json:"name"`
	Subject         string `json:"subject"`
	Code            string `json:"code"`
	IsActive        bool   `json:"isActive"`
	StudentCount    int64  `json:"studentCount"`
	LessonCount     int64  `json:"lessonCount"`
	AssignmentCount int64  `json:"assignmentCount"`
	PendingGrading  int64  `json:"pendingGrading"`
}

// TeacherDashboardResponse aggregates a teacher's classes and open work
type TeacherDashboardResponse struct {
	TotalClasses        int64          `json:"totalClasses"`
	TotalStudents       int64          `json:"totalStudents"`
	PendingGrading      int64          `json:"pendingGrading"`
	UnansweredQuestions int64          `json:"unansweredQuestions"`
	Classes             []ClassSummary `json:"classes"`
}

// UpcomingAssignment is one not-yet-submitted assignment nearing its due date
type UpcomingAssignment struct {
	AssignmentID int64     `json:"assignmentId"`
	ClassID      int64     `json:"classId"`
	ClassName    string    `json:"className"`
	Title        string    `json:"title"`
	DueDate      time.Time `json:"dueDate"`
	MaxPoints    int32     `json:"maxPoints"`
}

// GradeSummary is one recently graded submission on the student dashboard
type GradeSummary struct {
	SubmissionID    int64      `json:"submissionId"`
	AssignmentID    int64      `json:"assignmentId"`
	AssignmentTitle string     `json:"assignmentTitle"`
	ClassName       string     `json:"className"`
	Points          *int32     `json:"points,omitempty"`
	MaxPoints       int32      `json:"maxPoints"`
	GradedAt        *time.Time `json:"gradedAt,omitempty"`
}

// StudentDashboardResponse aggregates a student's enrolled work
type StudentDashboardResponse struct {
	EnrolledClasses     int64                  `json:"enrolledClasses"`
	UpcomingAssignments []UpcomingAssignment   `json:"upcomingAssignments"`
	RecentGrades        []GradeSummary         `json:"recentGrades"`
	RecentAnnouncements []AnnouncementResponse `json:"recentAnnouncements"`
}
