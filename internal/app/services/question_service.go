package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/demir/classhub/internal/app/auth"
	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/repositories"
	"github.com/demir/classhub/internal/pkg/apperrors"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// QuestionService defines the interface for lesson Q&A operations
type QuestionService interface {
	AskQuestion(ctx context.Context, lessonID int64, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestionsByLesson(ctx context.Context, lessonID int64, page, size int) (*dto.QuestionListResponse, error)
	AnswerQuestion(ctx context.Context, questionID int64, req *dto.AnswerQuestionRequest) (*dto.QuestionResponse, error)
}

// questionServiceImpl implements QuestionService
type questionServiceImpl struct {
	questionRepo *repositories.QuestionRepository
	lessonRepo   *repositories.LessonRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	questionRepo *repositories.QuestionRepository,
	lessonRepo *repositories.LessonRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) QuestionService {
	return &questionServiceImpl{
		questionRepo: questionRepo,
		lessonRepo:   lessonRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// AskQuestion posts a student question on a published lesson in a class the
// student belongs to.
func (s *questionServiceImpl) AskQuestion(ctx context.Context, lessonID int64, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateActiveEnrollment(ctx, lesson.ClassID, userID); err != nil {
		return nil, err
	}
	if !lesson.IsPublished {
		return nil, apperrors.ErrLessonNotPublished
	}

	question := &models.Question{
		LessonID:  lessonID,
		StudentID: userID,
		Content:   req.Content,
	}

	id, err := s.questionRepo.CreateQuestion(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("error creating question: %w", err)
	}

	created, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created question: %w", err)
	}

	resp := dto.FromQuestion(created)
	return &resp, nil
}

// GetQuestionsByLesson lists a lesson's questions, newest first. Students
// only reach questions on published lessons.
func (s *questionServiceImpl) GetQuestionsByLesson(ctx context.Context, lessonID int64, page, size int) (*dto.QuestionListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
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

	questions, err := s.questionRepo.GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}

	pageItems := paginate(questions, page, size)
	responses := make([]dto.QuestionResponse, 0, len(pageItems))
	for _, question := range pageItems {
		responses = append(responses, dto.FromQuestion(question))
	}

	return &dto.QuestionListResponse{
		Questions:  responses,
		Pagination: helpers.NewPaginationInfo(int64(len(questions)), page, size),
	}, nil
}

// AnswerQuestion records the owning teacher's single answer to a question.
func (s *questionServiceImpl) AnswerQuestion(ctx context.Context, questionID int64, req *dto.AnswerQuestionRequest) (*dto.QuestionResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateQuestionAnswerer(ctx, questionID, userID); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.Answer != nil {
		return nil, apperrors.ErrQuestionAlreadyAnswered
	}

	answer := &models.Answer{
		QuestionID: questionID,
		TeacherID:  userID,
		Content:    req.Content,
	}

	if _, err := s.questionRepo.CreateAnswer(ctx, answer); err != nil {
		return nil, err
	}

	answered, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("error loading answered question: %w", err)
	}

	s.logger.Info().
		Int64("questionId", questionID).
		Int64("teacherId", userID).
		Msg("Question answered")

	resp := dto.FromQuestion(answered)
	return &resp, nil
}
