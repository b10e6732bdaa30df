package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/services"
	"github.com/demir/classhub/internal/middleware"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// QuestionController handles lesson Q&A operations
type QuestionController struct {
	questionService services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService) *QuestionController {
	return &QuestionController{
		questionService: questionService,
	}
}

// AskQuestion posts a question on a lesson
// @Summary Ask a question
// @Description Posts the authenticated student's question on a published lesson in an enrolled class
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonID path int true "Lesson ID"
// @Param request body dto.AskQuestionRequest true "Question content"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponse} "Question posted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in this class"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonID}/questions [post]
func (c *QuestionController) AskQuestion(ctx *gin.Context) {
	lessonID, err := parseIDParam(ctx, "lessonID")
	if err != nil {
		invalidIDResponse(ctx, "lesson ID")
		return
	}

	var req dto.AskQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	question, err := c.questionService.AskQuestion(ctx, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(question))
}

// GetQuestionsByLesson lists a lesson's questions
// @Summary List questions
// @Description Lists questions on a lesson, newest first, each with its answer when present
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonID path int true "Lesson ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionListResponse} "Questions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No access to this lesson's class"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonID}/questions [get]
func (c *QuestionController) GetQuestionsByLesson(ctx *gin.Context) {
	lessonID, err := parseIDParam(ctx, "lessonID")
	if err != nil {
		invalidIDResponse(ctx, "lesson ID")
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	questions, err := c.questionService.GetQuestionsByLesson(ctx, lessonID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(questions))
}

// AnswerQuestion posts the teacher's answer to a question
// @Summary Answer a question
// @Description Records the owning teacher's single answer; answering twice is rejected
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionID path int true "Question ID"
// @Param request body dto.AnswerQuestionRequest true "Answer content"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponse} "Question answered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Question already answered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{questionID}/answer [post]
func (c *QuestionController) AnswerQuestion(ctx *gin.Context) {
	questionID, err := parseIDParam(ctx, "questionID")
	if err != nil {
		invalidIDResponse(ctx, "question ID")
		return
	}

	var req dto.AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	question, err := c.questionService.AnswerQuestion(ctx, questionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(question))
}
