package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/services"
	"github.com/demir/classhub/internal/middleware"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// parseIDParam parses a positive int64 ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}
	return id, nil
}

// invalidIDResponse writes the standard 400 response for a bad path ID
func invalidIDResponse(ctx *gin.Context, what string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+what)
	errorDetail = errorDetail.WithDetails("ID must be a positive number")
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// ClassController handles class and enrollment operations
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass creates a new class
// @Summary Create a class
// @Description Creates a class owned by the authenticated teacher with a generated join code
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class fields"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a teacher"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.CreateClass(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(class))
}

// GetMyClasses lists the caller's classes
// @Summary List own classes
// @Description Teachers get the classes they own; students get the classes they are enrolled in
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ClassListResponse} "Classes retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) GetMyClasses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	classes, err := c.classService.GetMyClasses(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classes))
}

// GetClass returns one class with its counts
// @Summary Get a class
// @Description Retrieves a class with student, lesson and assignment counts; owner or enrolled student only
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassDetailResponse} "Class retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No access to this class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	class, err := c.classService.GetClassByID(ctx, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(class))
}

// UpdateClass updates class fields
// @Summary Update a class
// @Description Updates name, subject and description of an owned class; the join code never changes
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Class fields"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Class updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.UpdateClass(ctx, classID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(class))
}

// ArchiveClass deactivates a class
// @Summary Archive a class
// @Description Marks an owned class inactive; archived classes reject new enrollments and submissions
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Class archived"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/archive [post]
func (c *ClassController) ArchiveClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	if err := c.classService.ArchiveClass(ctx, classID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Class archived successfully"}))
}

// UnarchiveClass reactivates a class
// @Summary Unarchive a class
// @Description Marks an archived owned class active again
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Class unarchived"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/unarchive [post]
func (c *ClassController) UnarchiveClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	if err := c.classService.UnarchiveClass(ctx, classID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Class unarchived successfully"}))
}

// DeleteClass removes a class permanently
// @Summary Delete a class
// @Description Hard-deletes an owned class with all its lessons, assignments, enrollments and announcements
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Class deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	if err := c.classService.DeleteClass(ctx, classID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Class deleted successfully"}))
}

// JoinClass enrolls the caller into a class by join code
// @Summary Join a class
// @Description Enrolls the authenticated student into the class matching the join code
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JoinClassRequest true "Join code"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Joined class"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown or archived join code"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/join [post]
func (c *ClassController) JoinClass(ctx *gin.Context) {
	var req dto.JoinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.JoinClass(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(class))
}

// LeaveClass withdraws the caller from a class
// @Summary Leave a class
// @Description Deactivates the authenticated student's enrollment; history is kept
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Left class"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in this class"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/leave [delete]
func (c *ClassController) LeaveClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	if err := c.classService.LeaveClass(ctx, classID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Left class successfully"}))
}

// GetRoster lists the active students of a class
// @Summary Get class roster
// @Description Lists the active students of an owned class, ordered by name
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Roster retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/students [get]
func (c *ClassController) GetRoster(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	roster, err := c.classService.GetRoster(ctx, classID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(roster))
}
