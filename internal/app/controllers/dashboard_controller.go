package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/services"
	"github.com/demir/classhub/internal/middleware"
)

// DashboardController handles role dashboard operations
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetTeacherDashboard returns the teacher dashboard
// @Summary Teacher dashboard
// @Description Aggregates the authenticated teacher's class totals, grading backlog, unanswered questions and per-class summaries
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TeacherDashboardResponse} "Dashboard retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a teacher"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/teacher [get]
func (c *DashboardController) GetTeacherDashboard(ctx *gin.Context) {
	dashboard, err := c.dashboardService.GetTeacherDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// GetStudentDashboard returns the student dashboard
// @Summary Student dashboard
// @Description Aggregates the authenticated student's enrolled classes, upcoming assignments, recent grades and announcements
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse} "Dashboard retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/student [get]
func (c *DashboardController) GetStudentDashboard(ctx *gin.Context) {
	dashboard, err := c.dashboardService.GetStudentDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}
