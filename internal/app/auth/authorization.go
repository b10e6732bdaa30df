package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/pkg/apperrors"
	"github.com/demir/classhub/internal/pkg/logger"
)

// Narrow read-side dependencies of the authorization rules. The concrete
// repositories satisfy these, and tests substitute fakes.
type classReader interface {
	GetByID(ctx context.Context, id int64) (*models.Class, error)
}

type lessonReader interface {
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
}

type assignmentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
}

type announcementReader interface {
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
}

type submissionReader interface {
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
}

type questionReader interface {
	GetQuestionByID(ctx context.Context, id int64) (*models.Question, error)
}

type enrollmentReader interface {
	IsActivelyEnrolled(ctx context.Context, studentID, classID int64) (bool, error)
}

// AuthorizationService decides who may act on which classroom resource.
// Every rule reduces to two facts: teachers own their classes and students
// belong to classes through active enrollments.
type AuthorizationService struct {
	classes       classReader
	lessons       lessonReader
	assignments   assignmentReader
	announcements announcementReader
	submissions   submissionReader
	questions     questionReader
	enrollments   enrollmentReader
}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService(
	classes classReader,
	lessons lessonReader,
	assignments assignmentReader,
	announcements announcementReader,
	submissions submissionReader,
	questions questionReader,
	enrollments enrollmentReader,
) *AuthorizationService {
	return &AuthorizationService{
		classes:       classes,
		lessons:       lessons,
		assignments:   assignments,
		announcements: announcements,
		submissions:   submissions,
		questions:     questions,
		enrollments:   enrollments,
	}
}

// CanManageClass checks if the user owns the class.
func (s *AuthorizationService) CanManageClass(ctx context.Context, classID, userID int64) (bool, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return false, err
		}
		logger.Error().Err(err).Int64("classId", classID).Msg("Error getting class in CanManageClass")
		return false, fmt.Errorf("failed to check class ownership: %w", err)
	}
	return class.TeacherID == userID, nil
}

// ValidateClassOwnership validates that the user owns the class or returns
// an error.
func (s *AuthorizationService) ValidateClassOwnership(ctx context.Context, classID, userID int64) error {
	canManage, err := s.CanManageClass(ctx, classID, userID)
	if err != nil {
		return err
	}
	if !canManage {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateLessonOwnership validates that the user owns the class the lesson
// belongs to.
func (s *AuthorizationService) ValidateLessonOwnership(ctx context.Context, lessonID, userID int64) error {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("lessonId", lessonID).Msg("Error getting lesson in ValidateLessonOwnership")
		return fmt.Errorf("failed to check lesson ownership: %w", err)
	}
	return s.ValidateClassOwnership(ctx, lesson.ClassID, userID)
}

// ValidateAssignmentOwnership validates that the user owns the class the
// assignment belongs to.
func (s *AuthorizationService) ValidateAssignmentOwnership(ctx context.Context, assignmentID, userID int64) error {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssignmentNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("assignmentId", assignmentID).Msg("Error getting assignment in ValidateAssignmentOwnership")
		return fmt.Errorf("failed to check assignment ownership: %w", err)
	}
	return s.ValidateClassOwnership(ctx, assignment.ClassID, userID)
}

// ValidateAnnouncementOwnership validates that the user owns the class the
// announcement was posted to.
func (s *AuthorizationService) ValidateAnnouncementOwnership(ctx context.Context, announcementID, userID int64) error {
	announcement, err := s.announcements.GetByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAnnouncementNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("announcementId", announcementID).Msg("Error getting announcement in ValidateAnnouncementOwnership")
		return fmt.Errorf("failed to check announcement ownership: %w", err)
	}
	return s.ValidateClassOwnership(ctx, announcement.ClassID, userID)
}

// ValidateSubmissionGrader validates that the user may grade the submission,
// which requires owning the class of the submission's assignment.
func (s *AuthorizationService) ValidateSubmissionGrader(ctx context.Context, submissionID, userID int64) error {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubmissionNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("submissionId", submissionID).Msg("Error getting submission in ValidateSubmissionGrader")
		return fmt.Errorf("failed to check submission access: %w", err)
	}
	return s.ValidateAssignmentOwnership(ctx, submission.AssignmentID, userID)
}

// ValidateQuestionAnswerer validates that the user may answer the question,
// which requires owning the class of the question's lesson.
func (s *AuthorizationService) ValidateQuestionAnswerer(ctx context.Context, questionID, userID int64) error {
	question, err := s.questions.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("questionId", questionID).Msg("Error getting question in ValidateQuestionAnswerer")
		return fmt.Errorf("failed to check question access: %w", err)
	}
	return s.ValidateLessonOwnership(ctx, question.LessonID, userID)
}

// ValidateActiveEnrollment validates that the student is actively enrolled
// in the class.
func (s *AuthorizationService) ValidateActiveEnrollment(ctx context.Context, classID, studentID int64) error {
	enrolled, err := s.enrollments.IsActivelyEnrolled(ctx, studentID, classID)
	if err != nil {
		logger.Error().Err(err).Int64("classId", classID).Int64("studentId", studentID).Msg("Error checking enrollment")
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return apperrors.ErrNotEnrolled
	}
	return nil
}

// CanViewClass checks if the user may read class content, either as the
// owning teacher or as an actively enrolled student.
func (s *AuthorizationService) CanViewClass(ctx context.Context, classID, userID int64) (bool, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return false, err
		}
		logger.Error().Err(err).Int64("classId", classID).Msg("Error getting class in CanViewClass")
		return false, fmt.Errorf("failed to check class access: %w", err)
	}

	if class.TeacherID == userID {
		return true, nil
	}

	return s.enrollments.IsActivelyEnrolled(ctx, userID, classID)
}

// ValidateClassAccess validates that the user may read class content or
// returns an error.
func (s *AuthorizationService) ValidateClassAccess(ctx context.Context, classID, userID int64) error {
	canView, err := s.CanViewClass(ctx, classID, userID)
	if err != nil {
		return err
	}
	if !canView {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
