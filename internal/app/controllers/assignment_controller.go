package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/services"
	"github.com/demir/classhub/internal/middleware"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// AssignmentController handles assignment operations
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// CreateAssignment creates an assignment in a class
// @Summary Create an assignment
// @Description Creates an assignment with a due date and maximum points in an owned class
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Param request body dto.CreateAssignmentRequest true "Assignment fields"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx, classID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(assignment))
}

// GetAssignmentsByClass lists a class's assignments
// @Summary List assignments
// @Description Lists assignments of a class ordered by due date; students see only published assignments with their own submission state
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentListResponse} "Assignments retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No access to this class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/assignments [get]
func (c *AssignmentController) GetAssignmentsByClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	assignments, err := c.assignmentService.GetAssignmentsByClass(ctx, classID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignments))
}

// GetAssignment returns one assignment
// @Summary Get an assignment
// @Description Retrieves an assignment; unpublished assignments are invisible to students, and a student's own submission is attached when present
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentID path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No access to this assignment's class"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{assignmentID} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	assignmentID, err := parseIDParam(ctx, "assignmentID")
	if err != nil {
		invalidIDResponse(ctx, "assignment ID")
		return
	}

	assignment, err := c.assignmentService.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignment))
}

// UpdateAssignment updates an assignment
// @Summary Update an assignment
// @Description Updates an owned assignment; max points cannot drop below an already-awarded grade
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentID path int true "Assignment ID"
// @Param request body dto.UpdateAssignmentRequest true "Assignment fields"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or max points below an awarded grade"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{assignmentID} [put]
func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	assignmentID, err := parseIDParam(ctx, "assignmentID")
	if err != nil {
		invalidIDResponse(ctx, "assignment ID")
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment, err := c.assignmentService.UpdateAssignment(ctx, assignmentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignment))
}

// DeleteAssignment removes an assignment
// @Summary Delete an assignment
// @Description Deletes an owned assignment together with all submissions and their stored files
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentID path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Assignment deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{assignmentID} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	assignmentID, err := parseIDParam(ctx, "assignmentID")
	if err != nil {
		invalidIDResponse(ctx, "assignment ID")
		return
	}

	if err := c.assignmentService.DeleteAssignment(ctx, assignmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Assignment deleted successfully"}))
}
