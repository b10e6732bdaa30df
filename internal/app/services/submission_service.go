package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"

	"github.com/demir/classhub/internal/app/auth"
	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/repositories"
	"github.com/demir/classhub/internal/pkg/apperrors"
	"github.com/demir/classhub/internal/pkg/filestorage"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// SubmissionService defines the interface for submission operations
type SubmissionService interface {
	SubmitAssignment(ctx context.Context, assignmentID int64, fileHeader *multipart.FileHeader, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error)
	GetSubmissionsByAssignment(ctx context.Context, assignmentID int64, page, size int) (*dto.SubmissionListResponse, error)
	GetMySubmission(ctx context.Context, assignmentID int64) (*dto.SubmissionResponse, error)
	GradeSubmission(ctx context.Context, submissionID int64, req *dto.GradeSubmissionRequest) (*dto.SubmissionResponse, error)
}

// submissionServiceImpl implements SubmissionService
type submissionServiceImpl struct {
	submissionRepo *repositories.SubmissionRepository
	assignmentRepo *repositories.AssignmentRepository
	classRepo      *repositories.ClassRepository
	fileRepo       *repositories.FileRepository
	authzService   *auth.AuthorizationService
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	submissionRepo *repositories.SubmissionRepository,
	assignmentRepo *repositories.AssignmentRepository,
	classRepo *repositories.ClassRepository,
	fileRepo *repositories.FileRepository,
	authzService *auth.AuthorizationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionServiceImpl{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		classRepo:      classRepo,
		fileRepo:       fileRepo,
		authzService:   authzService,
		storage:        storage,
		logger:         logger,
	}
}

// SubmitAssignment stores a student's uploaded work. A submission after the
// due date is accepted and marked LATE. A second submission replaces the
// first, but only on assignments that allow late submission; replacing clears
// any grade already given.
func (s *submissionServiceImpl) SubmitAssignment(ctx context.Context, assignmentID int64, fileHeader *multipart.FileHeader, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetByID(ctx, assignment.ClassID)
	if err != nil {
		return nil, err
	}
	if !class.IsActive {
		return nil, apperrors.ErrClassArchived
	}

	if err := s.authzService.ValidateActiveEnrollment(ctx, assignment.ClassID, userID); err != nil {
		return nil, err
	}
	if !assignment.IsPublished {
		return nil, apperrors.ErrAssignmentNotPublished
	}

	if err := filestorage.ValidateUpload(fileHeader); err != nil {
		return nil, err
	}

	existing, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignmentID, userID)
	switch {
	case err == nil:
		if !assignment.AcceptsResubmission() {
			return nil, apperrors.ErrAlreadySubmitted
		}
		return s.resubmit(ctx, assignment, existing, fileHeader, req.Comment, userID)
	case errors.Is(err, apperrors.ErrSubmissionNotFound):
		return s.submitFirst(ctx, assignment, fileHeader, req.Comment, userID)
	default:
		return nil, fmt.Errorf("error checking existing submission: %w", err)
	}
}

func (s *submissionServiceImpl) submitFirst(ctx context.Context, assignment *models.Assignment, fileHeader *multipart.FileHeader, comment string, studentID int64) (*dto.SubmissionResponse, error) {
	file, err := s.storeUpload(ctx, fileHeader, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission := &models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		FileID:       file.ID,
		Comment:      comment,
		Status:       models.ClassifySubmission(now, assignment.DueDate),
		SubmittedAt:  now,
	}

	id, err := s.submissionRepo.Create(ctx, submission)
	if err != nil {
		s.discardUpload(ctx, file)
		return nil, err
	}
	s.linkUpload(ctx, file.ID, id)

	created, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created submission: %w", err)
	}

	s.logger.Info().
		Int64("submissionId", id).
		Int64("assignmentId", assignment.ID).
		Int64("studentId", studentID).
		Str("status", string(created.Status)).
		Msg("Submission received")

	resp := dto.FromSubmission(created)
	return &resp, nil
}

func (s *submissionServiceImpl) resubmit(ctx context.Context, assignment *models.Assignment, existing *models.Submission, fileHeader *multipart.FileHeader, comment string, studentID int64) (*dto.SubmissionResponse, error) {
	file, err := s.storeUpload(ctx, fileHeader, studentID)
	if err != nil {
		return nil, err
	}

	oldFile := existing.File
	existing.Resubmit(file.ID, comment, time.Now(), assignment.DueDate)

	if err := s.submissionRepo.Replace(ctx, existing); err != nil {
		s.discardUpload(ctx, file)
		return nil, err
	}
	s.linkUpload(ctx, file.ID, existing.ID)

	removeStoredFiles(ctx, []*models.File{oldFile}, s.fileRepo, s.storage, s.logger)

	updated, err := s.submissionRepo.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading updated submission: %w", err)
	}

	s.logger.Info().
		Int64("submissionId", existing.ID).
		Int64("assignmentId", assignment.ID).
		Int64("studentId", studentID).
		Str("status", string(updated.Status)).
		Msg("Submission replaced")

	resp := dto.FromSubmission(updated)
	return &resp, nil
}

// GetSubmissionsByAssignment lists every submission to an assignment for its
// owning teacher, earliest first.
func (s *submissionServiceImpl) GetSubmissionsByAssignment(ctx context.Context, assignmentID int64, page, size int) (*dto.SubmissionListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateAssignmentOwnership(ctx, assignmentID, userID); err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.GetByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}

	pageItems := paginate(submissions, page, size)
	responses := make([]dto.SubmissionResponse, 0, len(pageItems))
	for _, submission := range pageItems {
		responses = append(responses, dto.FromSubmission(submission))
	}

	return &dto.SubmissionListResponse{
		Submissions: responses,
		Pagination:  helpers.NewPaginationInfo(int64(len(submissions)), page, size),
	}, nil
}

// GetMySubmission returns the caller's own submission for an assignment.
func (s *submissionServiceImpl) GetMySubmission(ctx context.Context, assignmentID int64) (*dto.SubmissionResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateActiveEnrollment(ctx, assignment.ClassID, userID); err != nil {
		return nil, err
	}
	if !assignment.IsPublished {
		return nil, apperrors.ErrAssignmentNotPublished
	}

	submission, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignmentID, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromSubmission(submission)
	return &resp, nil
}

// GradeSubmission records points and feedback. Points must lie within
// [0, maxPoints] of the submission's assignment.
func (s *submissionServiceImpl) GradeSubmission(ctx context.Context, submissionID int64, req *dto.GradeSubmissionRequest) (*dto.SubmissionResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateSubmissionGrader(ctx, submissionID, userID); err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, err
	}

	if !models.ValidGradePoints(*req.Points, assignment.MaxPoints) {
		return nil, apperrors.ErrPointsOutOfRange
	}

	if err := s.submissionRepo.Grade(ctx, submissionID, *req.Points, req.Feedback); err != nil {
		return nil, fmt.Errorf("error grading submission: %w", err)
	}

	graded, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("error loading graded submission: %w", err)
	}

	s.logger.Info().
		Int64("submissionId", submissionID).
		Int64("teacherId", userID).
		Int32("points", *req.Points).
		Msg("Submission graded")

	resp := dto.FromSubmission(graded)
	return &resp, nil
}

// storeUpload validates nothing; callers run ValidateUpload first. It writes
// the file to storage and records its metadata row.
func (s *submissionServiceImpl) storeUpload(ctx context.Context, fileHeader *multipart.FileHeader, studentID int64) (*models.File, error) {
	filePath, err := s.storage.SaveFileWithPath(fileHeader, "submissions")
	if err != nil {
		return nil, fmt.Errorf("error saving file: %w", err)
	}

	file := &models.File{
		FileName:     fileHeader.Filename,
		FilePath:     filePath,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		ResourceType: models.FileResourceSubmission,
		UploadedBy:   studentID,
	}

	fileID, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		if cleanupErr := s.storage.DeleteFile(filePath); cleanupErr != nil {
			s.logger.Warn().Err(cleanupErr).Str("path", filePath).Msg("Could not clean up orphaned upload")
		}
		return nil, fmt.Errorf("error creating file record: %w", err)
	}
	file.ID = fileID

	return file, nil
}

// linkUpload points a stored file at the submission that owns it. The file
// row has to exist before the submission row, so the link lands afterwards.
func (s *submissionServiceImpl) linkUpload(ctx context.Context, fileID, submissionID int64) {
	if err := s.fileRepo.SetResource(ctx, fileID, models.FileResourceSubmission, submissionID); err != nil {
		s.logger.Warn().Err(err).Int64("fileId", fileID).Int64("submissionId", submissionID).Msg("Could not link file to submission")
	}
}

// discardUpload undoes storeUpload after a failed submission write.
func (s *submissionServiceImpl) discardUpload(ctx context.Context, file *models.File) {
	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		s.logger.Warn().Err(err).Int64("fileId", file.ID).Msg("Could not delete file record after failed submission")
		return
	}
	if err := s.storage.DeleteFile(file.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("path", file.FilePath).Msg("Could not delete file after failed submission")
	}
}
