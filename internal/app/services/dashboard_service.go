package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/repositories"
)

const (
	// upcomingWindow bounds how far ahead the student dashboard looks for
	// unsubmitted assignments
	upcomingWindow = 7 * 24 * time.Hour
	upcomingLimit  = 10
	recentLimit    = 5
)

// DashboardService defines the interface for role dashboards
type DashboardService interface {
	GetTeacherDashboard(ctx context.Context) (*dto.TeacherDashboardResponse, error)
	GetStudentDashboard(ctx context.Context) (*dto.StudentDashboardResponse, error)
}

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	classRepo        *repositories.ClassRepository
	enrollmentRepo   *repositories.EnrollmentRepository
	assignmentRepo   *repositories.AssignmentRepository
	submissionRepo   *repositories.SubmissionRepository
	questionRepo     *repositories.QuestionRepository
	announcementRepo *repositories.AnnouncementRepository
	logger           zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	classRepo *repositories.ClassRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	assignmentRepo *repositories.AssignmentRepository,
	submissionRepo *repositories.SubmissionRepository,
	questionRepo *repositories.QuestionRepository,
	announcementRepo *repositories.AnnouncementRepository,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		classRepo:        classRepo,
		enrollmentRepo:   enrollmentRepo,
		assignmentRepo:   assignmentRepo,
		submissionRepo:   submissionRepo,
		questionRepo:     questionRepo,
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// GetTeacherDashboard aggregates a teacher's open work: class totals, grading
// backlog, unanswered questions and one summary row per class.
func (s *dashboardServiceImpl) GetTeacherDashboard(ctx context.Context) (*dto.TeacherDashboardResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	totalClasses, err := s.classRepo.CountActiveByTeacher(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting classes: %w", err)
	}

	totalStudents, err := s.classRepo.CountStudentsByTeacher(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	pendingGrading, err := s.assignmentRepo.CountPendingGradingByTeacher(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting pending grading: %w", err)
	}

	unanswered, err := s.questionRepo.CountUnansweredByTeacher(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting unanswered questions: %w", err)
	}

	classes, err := s.classRepo.GetByTeacher(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}

	pendingByClass, err := s.assignmentRepo.PendingGradingByClass(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting pending grading per class: %w", err)
	}

	summaries := make([]dto.ClassSummary, 0, len(classes))
	for _, class := range classes {
		summaries = append(summaries, dto.ClassSummary{
			ClassID:         class.ID,
			Name:            class.Name,
			Subject:         class.Subject,
			Code:            class.Code,
			IsActive:        class.IsActive,
			StudentCount:    class.StudentCount,
			LessonCount:     class.LessonCount,
			AssignmentCount: class.AssignmentCount,
			PendingGrading:  pendingByClass[class.ID],
		})
	}

	return &dto.TeacherDashboardResponse{
		TotalClasses:        totalClasses,
		TotalStudents:       totalStudents,
		PendingGrading:      pendingGrading,
		UnansweredQuestions: unanswered,
		Classes:             summaries,
	}, nil
}

// GetStudentDashboard aggregates a student's near-term work: assignments due
// inside the next week that they have not submitted to, their latest grades
// and the latest announcements across their classes.
func (s *dashboardServiceImpl) GetStudentDashboard(ctx context.Context) (*dto.StudentDashboardResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.CountActiveByStudent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting enrollments: %w", err)
	}

	now := time.Now()
	assignments, err := s.assignmentRepo.GetUpcomingByStudent(ctx, userID, now, now.Add(upcomingWindow), upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing upcoming assignments: %w", err)
	}

	upcoming := make([]dto.UpcomingAssignment, 0, len(assignments))
	for _, assignment := range assignments {
		item := dto.UpcomingAssignment{
			AssignmentID: assignment.ID,
			ClassID:      assignment.ClassID,
			Title:        assignment.Title,
			DueDate:      assignment.DueDate,
			MaxPoints:    assignment.MaxPoints,
		}
		if assignment.Class != nil {
			item.ClassName = assignment.Class.Name
		}
		upcoming = append(upcoming, item)
	}

	graded, err := s.submissionRepo.GetRecentGradedByStudent(ctx, userID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing recent grades: %w", err)
	}

	grades := make([]dto.GradeSummary, 0, len(graded))
	for _, submission := range graded {
		grade := dto.GradeSummary{
			SubmissionID: submission.ID,
			AssignmentID: submission.AssignmentID,
			Points:       submission.Points,
			GradedAt:     submission.GradedAt,
		}
		if submission.Assignment != nil {
			grade.AssignmentTitle = submission.Assignment.Title
			grade.MaxPoints = submission.Assignment.MaxPoints
			if submission.Assignment.Class != nil {
				grade.ClassName = submission.Assignment.Class.Name
			}
		}
		grades = append(grades, grade)
	}

	announcements, err := s.announcementRepo.GetRecentByStudent(ctx, userID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing recent announcements: %w", err)
	}

	recentAnnouncements := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		recentAnnouncements = append(recentAnnouncements, dto.FromAnnouncement(announcement))
	}

	return &dto.StudentDashboardResponse{
		EnrolledClasses:     enrolled,
		UpcomingAssignments: upcoming,
		RecentGrades:        grades,
		RecentAnnouncements: recentAnnouncements,
	}, nil
}
