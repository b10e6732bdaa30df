package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/demir/classhub/internal/app/auth"
	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/repositories"
	"github.com/demir/classhub/internal/pkg/apperrors"
	"github.com/demir/classhub/internal/pkg/filestorage"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// LessonService defines the interface for lesson operations
type LessonService interface {
	CreateLesson(ctx context.Context, classID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetLessonByID(ctx context.Context, id int64) (*dto.LessonDetailResponse, error)
	GetLessonsByClass(ctx context.Context, classID int64, page, size int) (*dto.LessonListResponse, error)
	UpdateLesson(ctx context.Context, id int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, id int64) error
	AddFileToLesson(ctx context.Context, lessonID int64, fileHeader *multipart.FileHeader) (*dto.FileResponse, error)
	DeleteFileFromLesson(ctx context.Context, lessonID, fileID int64) error
}

// lessonServiceImpl implements LessonService
type lessonServiceImpl struct {
	lessonRepo   *repositories.LessonRepository
	fileRepo     *repositories.FileRepository
	questionRepo *repositories.QuestionRepository
	authzService *auth.AuthorizationService
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewLessonService creates a new LessonService
func NewLessonService(
	lessonRepo *repositories.LessonRepository,
	fileRepo *repositories.FileRepository,
	questionRepo *repositories.QuestionRepository,
	authzService *auth.AuthorizationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) LessonService {
	return &lessonServiceImpl{
		lessonRepo:   lessonRepo,
		fileRepo:     fileRepo,
		questionRepo: questionRepo,
		authzService: authzService,
		storage:      storage,
		logger:       logger,
	}
}

// CreateLesson posts a lesson to a class owned by the caller. When no
// position is given the lesson is appended after the existing ones.
func (s *lessonServiceImpl) CreateLesson(ctx context.Context, classID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassOwnership(ctx, classID, userID); err != nil {
		return nil, err
	}

	orderNum := req.OrderNum
	if orderNum == 0 {
		max, err := s.lessonRepo.MaxOrderNum(ctx, classID)
		if err != nil {
			return nil, fmt.Errorf("error determining lesson position: %w", err)
		}
		orderNum = max + 1
	}

	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	lesson := &models.Lesson{
		ClassID:     classID,
		Title:       req.Title,
		Content:     req.Content,
		OrderNum:    orderNum,
		IsPublished: isPublished,
	}

	id, err := s.lessonRepo.Create(ctx, lesson)
	if err != nil {
		return nil, fmt.Errorf("error creating lesson: %w", err)
	}

	created, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created lesson: %w", err)
	}

	resp := dto.FromLesson(created)
	return &resp, nil
}

// GetLessonByID returns a lesson with its attachments and questions. For
// students the lesson must be published and in a class they belong to;
// drafts read as missing.
func (s *lessonServiceImpl) GetLessonByID(ctx context.Context, id int64) (*dto.LessonDetailResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if isTeacher(ctx) {
		if err := s.authzService.ValidateClassOwnership(ctx, lesson.ClassID, userID); err != nil {
			return nil, err
		}
	} else {
		if err := s.authzService.ValidateActiveEnrollment(ctx, lesson.ClassID, userID); err != nil {
			return nil, err
		}
		if !lesson.IsPublished {
			return nil, apperrors.ErrLessonNotPublished
		}
	}

	files, err := s.fileRepo.GetByResource(ctx, models.FileResourceLesson, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading lesson files: %w", err)
	}
	lesson.Files = files

	questions, err := s.questionRepo.GetByLesson(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading lesson questions: %w", err)
	}
	lesson.Questions = questions

	resp := dto.FromLessonDetail(lesson)
	return &resp, nil
}

// GetLessonsByClass lists a class's lessons in presentation order. Students
// only see published lessons.
func (s *lessonServiceImpl) GetLessonsByClass(ctx context.Context, classID int64, page, size int) (*dto.LessonListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassAccess(ctx, classID, userID); err != nil {
		return nil, err
	}

	publishedOnly := !isTeacher(ctx)
	lessons, err := s.lessonRepo.GetByClass(ctx, classID, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}

	pageItems := paginate(lessons, page, size)
	responses := make([]dto.LessonResponse, 0, len(pageItems))
	for _, lesson := range pageItems {
		responses = append(responses, dto.FromLesson(lesson))
	}

	return &dto.LessonListResponse{
		Lessons:    responses,
		Pagination: helpers.NewPaginationInfo(int64(len(lessons)), page, size),
	}, nil
}

// UpdateLesson changes a lesson's content, position and publication state.
func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, id int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateLessonOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	if req.OrderNum > 0 {
		lesson.OrderNum = req.OrderNum
	}
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("error updating lesson: %w", err)
	}

	resp := dto.FromLesson(lesson)
	return &resp, nil
}

// DeleteLesson removes a lesson, its questions and its attachments.
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, id int64) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateLessonOwnership(ctx, id, userID); err != nil {
		return err
	}

	files, err := s.fileRepo.GetByResource(ctx, models.FileResourceLesson, id)
	if err != nil {
		return fmt.Errorf("error loading lesson files: %w", err)
	}

	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}

	// Attachment records and disk files go after the row so a failed delete
	// never strands a lesson without its files
	removeStoredFiles(ctx, files, s.fileRepo, s.storage, s.logger)

	return nil
}

// AddFileToLesson validates and stores an attachment on a lesson.
func (s *lessonServiceImpl) AddFileToLesson(ctx context.Context, lessonID int64, fileHeader *multipart.FileHeader) (*dto.FileResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateLessonOwnership(ctx, lessonID, userID); err != nil {
		return nil, err
	}

	if err := filestorage.ValidateUpload(fileHeader); err != nil {
		return nil, err
	}

	filePath, err := s.storage.SaveFileWithPath(fileHeader, "lessons")
	if err != nil {
		return nil, fmt.Errorf("error saving file: %w", err)
	}

	file := &models.File{
		FileName:     fileHeader.Filename,
		FilePath:     filePath,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		ResourceType: models.FileResourceLesson,
		ResourceID:   lessonID,
		UploadedBy:   userID,
	}

	fileID, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		// Keep storage consistent with the database
		if cleanupErr := s.storage.DeleteFile(filePath); cleanupErr != nil {
			s.logger.Warn().Err(cleanupErr).Str("path", filePath).Msg("Could not clean up orphaned upload")
		}
		return nil, fmt.Errorf("error creating file record: %w", err)
	}
	file.ID = fileID

	resp := dto.FromFile(file)
	return &resp, nil
}

// DeleteFileFromLesson removes one attachment from a lesson.
func (s *lessonServiceImpl) DeleteFileFromLesson(ctx context.Context, lessonID, fileID int64) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateLessonOwnership(ctx, lessonID, userID); err != nil {
		return err
	}

	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	if file.ResourceType != models.FileResourceLesson || file.ResourceID != lessonID {
		return apperrors.ErrFileNotFound
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}

	if err := s.storage.DeleteFile(file.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("path", file.FilePath).Msg("Could not delete file from storage")
	}

	return nil
}
