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
)

// AssignmentService defines the interface for assignment operations
type AssignmentService interface {
	CreateAssignment(ctx context.Context, classID int64, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	GetAssignmentByID(ctx context.Context, id int64) (*dto.AssignmentResponse, error)
	GetAssignmentsByClass(ctx context.Context, classID int64, page, size int) (*dto.AssignmentListResponse, error)
	UpdateAssignment(ctx context.Context, id int64, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id int64) error
}

// assignmentServiceImpl implements AssignmentService
type assignmentServiceImpl struct {
	assignmentRepo *repositories.AssignmentRepository
	submissionRepo *repositories.SubmissionRepository
	fileRepo       *repositories.FileRepository
	authzService   *auth.AuthorizationService
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo *repositories.AssignmentRepository,
	submissionRepo *repositories.SubmissionRepository,
	fileRepo *repositories.FileRepository,
	authzService *auth.AuthorizationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		fileRepo:       fileRepo,
		authzService:   authzService,
		storage:        storage,
		logger:         logger,
	}
}

// CreateAssignment posts an assignment to a class owned by the caller.
func (s *assignmentServiceImpl) CreateAssignment(ctx context.Context, classID int64, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassOwnership(ctx, classID, userID); err != nil {
		return nil, err
	}

	allowLate := true
	if req.AllowLateSubmission != nil {
		allowLate = *req.AllowLateSubmission
	}
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	assignment := &models.Assignment{
		ClassID:             classID,
		Title:               req.Title,
		Description:         req.Description,
		DueDate:             req.DueDate,
		MaxPoints:           *req.MaxPoints,
		AllowLateSubmission: allowLate,
		IsPublished:         isPublished,
	}

	id, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return nil, fmt.Errorf("error creating assignment: %w", err)
	}

	created, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created assignment: %w", err)
	}

	resp := dto.FromAssignment(created)
	return &resp, nil
}

// GetAssignmentByID returns one assignment. Students additionally get their
// own submission attached when they have one.
func (s *assignmentServiceImpl) GetAssignmentByID(ctx context.Context, id int64) (*dto.AssignmentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if isTeacher(ctx) {
		if err := s.authzService.ValidateClassOwnership(ctx, assignment.ClassID, userID); err != nil {
			return nil, err
		}
	} else {
		if err := s.authzService.ValidateActiveEnrollment(ctx, assignment.ClassID, userID); err != nil {
			return nil, err
		}
		if !assignment.IsPublished {
			return nil, apperrors.ErrAssignmentNotPublished
		}
		if err := s.attachOwnSubmission(ctx, assignment, userID); err != nil {
			return nil, err
		}
	}

	resp := dto.FromAssignment(assignment)
	return &resp, nil
}

// GetAssignmentsByClass lists a class's assignments ordered by due date.
// Students only see published assignments.
func (s *assignmentServiceImpl) GetAssignmentsByClass(ctx context.Context, classID int64, page, size int) (*dto.AssignmentListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassAccess(ctx, classID, userID); err != nil {
		return nil, err
	}

	student := !isTeacher(ctx)
	assignments, err := s.assignmentRepo.GetByClass(ctx, classID, student)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}

	pageItems := paginate(assignments, page, size)
	responses := make([]dto.AssignmentResponse, 0, len(pageItems))
	for _, assignment := range pageItems {
		if student {
			if err := s.attachOwnSubmission(ctx, assignment, userID); err != nil {
				return nil, err
			}
		}
		responses = append(responses, dto.FromAssignment(assignment))
	}

	return &dto.AssignmentListResponse{
		Assignments: responses,
		Pagination:  helpers.NewPaginationInfo(int64(len(assignments)), page, size),
	}, nil
}

// UpdateAssignment changes an assignment. Max points can only shrink down to
// the highest grade already handed out.
func (s *assignmentServiceImpl) UpdateAssignment(ctx context.Context, id int64, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateAssignmentOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if *req.MaxPoints < assignment.MaxPoints {
		awarded, err := s.assignmentRepo.MaxAwardedPoints(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("error checking awarded points: %w", err)
		}
		if *req.MaxPoints < awarded {
			return nil, apperrors.ErrMaxPointsBelowAwarded
		}
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.DueDate = req.DueDate
	assignment.MaxPoints = *req.MaxPoints
	assignment.AllowLateSubmission = *req.AllowLateSubmission
	assignment.IsPublished = *req.IsPublished

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("error updating assignment: %w", err)
	}

	resp := dto.FromAssignment(assignment)
	return &resp, nil
}

// DeleteAssignment removes an assignment along with its submissions and
// their uploaded files.
func (s *assignmentServiceImpl) DeleteAssignment(ctx context.Context, id int64) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateAssignmentOwnership(ctx, id, userID); err != nil {
		return err
	}

	submissions, err := s.submissionRepo.GetByAssignment(ctx, id)
	if err != nil {
		return fmt.Errorf("error loading submissions: %w", err)
	}

	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}

	// Submission rows cascade with the assignment; their file records and
	// disk files need explicit cleanup
	files := make([]*models.File, 0, len(submissions))
	for _, submission := range submissions {
		files = append(files, submission.File)
	}
	removeStoredFiles(ctx, files, s.fileRepo, s.storage, s.logger)

	return nil
}

func (s *assignmentServiceImpl) attachOwnSubmission(ctx context.Context, assignment *models.Assignment, studentID int64) error {
	submission, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignment.ID, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubmissionNotFound) {
			return nil
		}
		return fmt.Errorf("error loading own submission: %w", err)
	}
	assignment.MySubmission = submission
	return nil
}
