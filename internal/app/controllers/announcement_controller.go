package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/services"
	"github.com/demir/classhub/internal/middleware"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// AnnouncementController handles class announcement operations
type AnnouncementController struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
	}
}

// CreateAnnouncement posts an announcement to a class
// @Summary Create an announcement
// @Description Posts an announcement to an owned class, optionally pinned
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Param request body dto.CreateAnnouncementRequest true "Announcement fields"
// @Success 201 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	announcement, err := c.announcementService.CreateAnnouncement(ctx, classID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(announcement))
}

// GetAnnouncementsByClass lists a class's announcements
// @Summary List announcements
// @Description Lists announcements of a class, pinned first then newest
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path int true "Class ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementListResponse} "Announcements retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No access to this class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classID}/announcements [get]
func (c *AnnouncementController) GetAnnouncementsByClass(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		invalidIDResponse(ctx, "class ID")
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	announcements, err := c.announcementService.GetAnnouncementsByClass(ctx, classID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcements))
}

// UpdateAnnouncement updates an announcement
// @Summary Update an announcement
// @Description Updates title, content and pin state of an owned announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcementID path int true "Announcement ID"
// @Param request body dto.UpdateAnnouncementRequest true "Announcement fields"
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/{announcementID} [put]
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	announcementID, err := parseIDParam(ctx, "announcementID")
	if err != nil {
		invalidIDResponse(ctx, "announcement ID")
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	announcement, err := c.announcementService.UpdateAnnouncement(ctx, announcementID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcement))
}

// DeleteAnnouncement removes an announcement
// @Summary Delete an announcement
// @Description Deletes an owned announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcementID path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Announcement deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid announcement ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the class owner"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/{announcementID} [delete]
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	announcementID, err := parseIDParam(ctx, "announcementID")
	if err != nil {
		invalidIDResponse(ctx, "announcement ID")
		return
	}

	if err := c.announcementService.DeleteAnnouncement(ctx, announcementID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Announcement deleted successfully"}))
}
