package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/services"
	"github.com/demir/classhub/internal/middleware"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// LessonController handles lesson and lesson attachment operations
type LessonController struct {
	lessonService services.LessonService
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService services.LessonService) *LessonController {
	return &LessonController{
		lessonService: lessonService,
	}
}

// CreateLesson creates a lesson in a class
// @Summary Create a lesson
// @Description Creates a lesson in an owned class; omitting orderNum appends it after existing lessons
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Param request body dto.CreateLessonRequest true "Lesson fields"
// @Success 201 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	lesson, err := c.lessonService.CreateLesson(ctx, classID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lesson))
}

// GetLessonsByClass lists a class's lessons
// @Summary List lessons
// @Description Lists lessons of a class in presentation order; students see only published ones
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.LessonListResponse} "Lessons retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No access to this class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/lessons [get]
func (c *LessonController) GetLessonsByClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	lessons, err := c.lessonService.GetLessonsByClass(ctx, classID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lessons))
}

// GetLesson returns one lesson with files and questions
// @Summary Get a lesson
// @Description Retrieves a lesson with its attachments and questions; unpublished lessons are invisible to students
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonID path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.LessonDetailResponse} "Lesson retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No access to this lesson's class"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonID} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lessonID, err := parseIDParam(ctx, "lessonID")
	if err != nil {
		invalidIDResponse(ctx, "lesson ID")
		return
	}

	lesson, err := c.lessonService.GetLessonByID(ctx, lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// UpdateLesson updates a lesson
// @Summary Update a lesson
// @Description Updates title, content, position and publication state of an owned lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonID path int true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Lesson fields"
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonID} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	lessonID, err := parseIDParam(ctx, "lessonID")
	if err != nil {
		invalidIDResponse(ctx, "lesson ID")
		return
	}

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	lesson, err := c.lessonService.UpdateLesson(ctx, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// DeleteLesson removes a lesson
// @Summary Delete a lesson
// @Description Deletes an owned lesson together with its questions and stored attachments
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonID path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Lesson deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonID} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	lessonID, err := parseIDParam(ctx, "lessonID")
	if err != nil {
		invalidIDResponse(ctx, "lesson ID")
		return
	}

	if err := c.lessonService.DeleteLesson(ctx, lessonID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Lesson deleted successfully"}))
}

// UploadFile attaches a file to a lesson
// @Summary Upload a lesson file
// @Description Validates and stores an attachment on an owned lesson
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param lessonID path int true "Lesson ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.FileResponse} "File uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file, bad type or too large"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonID}/files [post]
func (c *LessonController) UploadFile(ctx *gin.Context) {
	lessonID, err := parseIDParam(ctx, "lessonID")
	if err != nil {
		invalidIDResponse(ctx, "lesson ID")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidFile, "Invalid or missing file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := c.lessonService.AddFileToLesson(ctx, lessonID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(file))
}

// DeleteFile removes a lesson attachment
// @Summary Delete a lesson file
// @Description Removes an attachment record and its stored file from an owned lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonID path int true "Lesson ID"
// @Param fileID path int true "File ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "File deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Lesson or file not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonID}/files/{fileID} [delete]
func (c *LessonController) DeleteFile(ctx *gin.Context) {
	lessonID, err := parseIDParam(ctx, "lessonID")
	if err != nil {
		invalidIDResponse(ctx, "lesson ID")
		return
	}

	fileID, err := parseIDParam(ctx, "fileID")
	if err != nil {
		invalidIDResponse(ctx, "file ID")
		return
	}

	if err := c.lessonService.DeleteFileFromLesson(ctx, lessonID, fileID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "File deleted successfully"}))
}
