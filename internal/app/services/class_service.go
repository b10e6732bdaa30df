package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/demir/classhub/internal/app/auth"
	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/repositories"
	"github.com/demir/classhub/internal/pkg/apperrors"
	"github.com/demir/classhub/internal/pkg/filestorage"
	"github.com/demir/classhub/internal/pkg/helpers"
	"github.com/demir/classhub/internal/pkg/joincode"
)

// ClassService defines the interface for class and enrollment operations
type ClassService interface {
	CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	GetClassByID(ctx context.Context, id int64) (*dto.ClassDetailResponse, error)
	GetMyClasses(ctx context.Context, page, size int) (*dto.ClassListResponse, error)
	UpdateClass(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*dto.ClassResponse, error)
	ArchiveClass(ctx context.Context, id int64) error
	UnarchiveClass(ctx context.Context, id int64) error
	DeleteClass(ctx context.Context, id int64) error
	JoinClass(ctx context.Context, req *dto.JoinClassRequest) (*dto.ClassResponse, error)
	LeaveClass(ctx context.Context, classID int64) error
	GetRoster(ctx context.Context, classID int64, page, size int) (*dto.StudentListResponse, error)
}

// classServiceImpl implements ClassService
type classServiceImpl struct {
	classRepo      *repositories.ClassRepository
	enrollmentRepo *repositories.EnrollmentRepository
	fileRepo       *repositories.FileRepository
	authzService   *auth.AuthorizationService
	storage        filestorage.FileStorage
	codeGenerator  *joincode.Generator
	logger         zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(
	classRepo *repositories.ClassRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	fileRepo *repositories.FileRepository,
	authzService *auth.AuthorizationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) ClassService {
	return &classServiceImpl{
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
		fileRepo:       fileRepo,
		authzService:   authzService,
		storage:        storage,
		codeGenerator:  joincode.NewGenerator(),
		logger:         logger,
	}
}

// CreateClass creates a class owned by the calling teacher with a freshly
// generated join code.
func (s *classServiceImpl) CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	teacherID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	code, err := s.codeGenerator.Generate(ctx, s.classRepo.CodeExists)
	if err != nil {
		if errors.Is(err, joincode.ErrSpaceExhausted) {
			s.logger.Error().Err(err).Msg("Join code space exhausted")
			return nil, apperrors.ErrCodeGenerationFailed
		}
		return nil, fmt.Errorf("error generating join code: %w", err)
	}

	class := &models.Class{
		TeacherID:   teacherID,
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
		Code:        code,
		IsActive:    true,
	}

	id, err := s.classRepo.Create(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("error creating class: %w", err)
	}

	created, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created class: %w", err)
	}

	s.logger.Info().Int64("classId", id).Int64("teacherId", teacherID).Msg("Class created")

	resp := dto.FromClass(created)
	return &resp, nil
}

// GetClassByID returns class details to its teacher or an enrolled student.
func (s *classServiceImpl) GetClassByID(ctx context.Context, id int64) (*dto.ClassDetailResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassAccess(ctx, id, userID); err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromClassDetail(class)
	return &resp, nil
}

// GetMyClasses lists the caller's classes: owned ones for teachers, active
// enrollments for students.
func (s *classServiceImpl) GetMyClasses(ctx context.Context, page, size int) (*dto.ClassListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var classes []*models.Class
	if isTeacher(ctx) {
		classes, err = s.classRepo.GetByTeacher(ctx, userID)
	} else {
		classes, err = s.classRepo.GetByStudent(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}

	pageItems := paginate(classes, page, size)
	responses := make([]dto.ClassResponse, 0, len(pageItems))
	for _, class := range pageItems {
		responses = append(responses, dto.FromClass(class))
	}

	return &dto.ClassListResponse{
		Classes:    responses,
		Pagination: helpers.NewPaginationInfo(int64(len(classes)), page, size),
	}, nil
}

// UpdateClass changes a class's name, subject and description.
func (s *classServiceImpl) UpdateClass(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	class.Name = req.Name
	class.Subject = req.Subject
	class.Description = req.Description

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, fmt.Errorf("error updating class: %w", err)
	}

	resp := dto.FromClass(class)
	return &resp, nil
}

// ArchiveClass deactivates a class. Students keep their enrollments but the
// class stops accepting joins and disappears from student listings.
func (s *classServiceImpl) ArchiveClass(ctx context.Context, id int64) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateClassOwnership(ctx, id, userID); err != nil {
		return err
	}

	return s.classRepo.SetActive(ctx, id, false)
}

// UnarchiveClass restores an archived class.
func (s *classServiceImpl) UnarchiveClass(ctx context.Context, id int64) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateClassOwnership(ctx, id, userID); err != nil {
		return err
	}

	return s.classRepo.SetActive(ctx, id, true)
}

// DeleteClass removes a class permanently together with its lessons,
// assignments, enrollments and announcements. Lesson attachments and
// submission files do not cascade with the rows and are cleaned up here.
func (s *classServiceImpl) DeleteClass(ctx context.Context, id int64) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateClassOwnership(ctx, id, userID); err != nil {
		return err
	}

	files, err := s.fileRepo.GetByClass(ctx, id)
	if err != nil {
		return fmt.Errorf("error loading class files: %w", err)
	}

	if err := s.classRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}

	removeStoredFiles(ctx, files, s.fileRepo, s.storage, s.logger)

	s.logger.Info().Int64("classId", id).Int64("teacherId", userID).Msg("Class deleted")
	return nil
}

// JoinClass enrolls the calling student into the class matching the join
// code. Rejoining a class left earlier reactivates the old enrollment.
func (s *classServiceImpl) JoinClass(ctx context.Context, req *dto.JoinClassRequest) (*dto.ClassResponse, error) {
	studentID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	code := joincode.Normalize(req.Code)
	class, err := s.classRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, apperrors.ErrInvalidJoinCode
		}
		return nil, fmt.Errorf("error looking up join code: %w", err)
	}

	// Archived classes are not joinable; their codes read as unknown so the
	// response does not leak that the class exists.
	if !class.IsActive {
		return nil, apperrors.ErrInvalidJoinCode
	}

	enrollment, err := s.enrollmentRepo.GetByStudentAndClass(ctx, studentID, class.ID)
	switch {
	case err == nil && enrollment.IsActive:
		return nil, apperrors.ErrAlreadyEnrolled
	case err == nil:
		if err := s.enrollmentRepo.Reactivate(ctx, enrollment.ID); err != nil {
			return nil, fmt.Errorf("error reactivating enrollment: %w", err)
		}
	case errors.Is(err, apperrors.ErrResourceNotFound):
		newEnrollment := &models.Enrollment{
			StudentID: studentID,
			ClassID:   class.ID,
			IsActive:  true,
		}
		if _, err := s.enrollmentRepo.Create(ctx, newEnrollment); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}

	s.logger.Info().Int64("classId", class.ID).Int64("studentId", studentID).Msg("Student joined class")

	resp := dto.FromClass(class)
	return &resp, nil
}

// LeaveClass deactivates the calling student's enrollment.
func (s *classServiceImpl) LeaveClass(ctx context.Context, classID int64) error {
	studentID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	return s.enrollmentRepo.Deactivate(ctx, studentID, classID)
}

// GetRoster lists the active students of a class. Teachers only.
func (s *classServiceImpl) GetRoster(ctx context.Context, classID int64, page, size int) (*dto.StudentListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassOwnership(ctx, classID, userID); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.GetRoster(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing roster: %w", err)
	}

	pageItems := paginate(enrollments, page, size)
	students := make([]dto.EnrolledStudentResponse, 0, len(pageItems))
	for _, enrollment := range pageItems {
		students = append(students, dto.FromEnrollment(enrollment))
	}

	return &dto.StudentListResponse{
		Students:   students,
		Pagination: helpers.NewPaginationInfo(int64(len(enrollments)), page, size),
	}, nil
}
