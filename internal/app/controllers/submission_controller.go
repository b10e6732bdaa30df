package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/services"
	"github.com/demir/classhub/internal/middleware"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// SubmissionController handles submission upload and grading operations
type SubmissionController struct {
	submissionService services.SubmissionService
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService services.SubmissionService) *SubmissionController {
	return &SubmissionController{
		submissionService: submissionService,
	}
}

// SubmitAssignment uploads the caller's work for an assignment
// @Summary Submit an assignment
// @Description Uploads the authenticated student's work; submitting again replaces the previous upload when late submission is allowed
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param assignmentID path int true "Assignment ID"
// @Param file formData file true "File to upload"
// @Param comment formData string false "Optional comment"
// @Success 201 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file, bad type or too large"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in this class"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted or class archived"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{assignmentID}/submissions [post]
func (c *SubmissionController) SubmitAssignment(ctx *gin.Context) {
	assignmentID, err := parseIDParam(ctx, "assignmentID")
	if err != nil {
		invalidIDResponse(ctx, "assignment ID")
		return
	}

	var req dto.CreateSubmissionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidFile, "Invalid or missing file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	submission, err := c.submissionService.SubmitAssignment(ctx, assignmentID, fileHeader, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(submission))
}

// GetSubmissionsByAssignment lists submissions to an assignment
// @Summary List submissions
// @Description Lists all submissions to an owned assignment, ungraded first
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentID path int true "Assignment ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionListResponse} "Submissions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{assignmentID}/submissions [get]
func (c *SubmissionController) GetSubmissionsByAssignment(ctx *gin.Context) {
	assignmentID, err := parseIDParam(ctx, "assignmentID")
	if err != nil {
		invalidIDResponse(ctx, "assignment ID")
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	submissions, err := c.submissionService.GetSubmissionsByAssignment(ctx, assignmentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(submissions))
}

// GetMySubmission returns the caller's submission for an assignment
// @Summary Get own submission
// @Description Retrieves the authenticated student's submission for an assignment
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentID path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in this class"
// @Failure 404 {object} dto.ErrorResponse "No submission yet"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{assignmentID}/submissions/me [get]
func (c *SubmissionController) GetMySubmission(ctx *gin.Context) {
	assignmentID, err := parseIDParam(ctx, "assignmentID")
	if err != nil {
		invalidIDResponse(ctx, "assignment ID")
		return
	}

	submission, err := c.submissionService.GetMySubmission(ctx, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(submission))
}

// GradeSubmission records points and feedback on a submission
// @Summary Grade a submission
// @Description Sets points within [0, maxPoints] and feedback on a submission to an owned assignment; re-grading updates in place
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submissionID path int true "Submission ID"
// @Param request body dto.GradeSubmissionRequest true "Points and feedback"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission graded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or points out of range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /submissions/{submissionID}/grade [put]
func (c *SubmissionController) GradeSubmission(ctx *gin.Context) {
	submissionID, err := parseIDParam(ctx, "submissionID")
	if err != nil {
		invalidIDResponse(ctx, "submission ID")
		return
	}

	var req dto.GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	submission, err := c.submissionService.GradeSubmission(ctx, submissionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(submission))
}
