package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/demir/classhub/internal/app/auth"
	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/repositories"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, classID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	GetAnnouncementsByClass(ctx context.Context, classID int64, page, size int) (*dto.AnnouncementListResponse, error)
	UpdateAnnouncement(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
}

// announcementServiceImpl implements AnnouncementService
type announcementServiceImpl struct {
	announcementRepo *repositories.AnnouncementRepository
	authzService     *auth.AuthorizationService
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(
	announcementRepo *repositories.AnnouncementRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) AnnouncementService {
	return &announcementServiceImpl{
		announcementRepo: announcementRepo,
		authzService:     authzService,
		logger:           logger,
	}
}

// CreateAnnouncement posts an announcement to a class owned by the caller.
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, classID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassOwnership(ctx, classID, userID); err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		ClassID:   classID,
		TeacherID: userID,
		Title:     req.Title,
		Content:   req.Content,
		IsPinned:  req.IsPinned,
	}

	id, err := s.announcementRepo.Create(ctx, announcement)
	if err != nil {
		return nil, fmt.Errorf("error creating announcement: %w", err)
	}

	created, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created announcement: %w", err)
	}

	resp := dto.FromAnnouncement(created)
	return &resp, nil
}

// GetAnnouncementsByClass lists a class's announcements, pinned ones first.
func (s *announcementServiceImpl) GetAnnouncementsByClass(ctx context.Context, classID int64, page, size int) (*dto.AnnouncementListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateClassAccess(ctx, classID, userID); err != nil {
		return nil, err
	}

	announcements, err := s.announcementRepo.GetByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}

	pageItems := paginate(announcements, page, size)
	responses := make([]dto.AnnouncementResponse, 0, len(pageItems))
	for _, announcement := range pageItems {
		responses = append(responses, dto.FromAnnouncement(announcement))
	}

	return &dto.AnnouncementListResponse{
		Announcements: responses,
		Pagination:    helpers.NewPaginationInfo(int64(len(announcements)), page, size),
	}, nil
}

// UpdateAnnouncement changes an announcement's title, content or pin state.
func (s *announcementServiceImpl) UpdateAnnouncement(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateAnnouncementOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	announcement.Title = req.Title
	announcement.Content = req.Content
	announcement.IsPinned = req.IsPinned

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("error updating announcement: %w", err)
	}

	resp := dto.FromAnnouncement(announcement)
	return &resp, nil
}

// DeleteAnnouncement removes an announcement.
func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, id int64) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateAnnouncementOwnership(ctx, id, userID); err != nil {
		return err
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}

	return nil
}
