package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	appauth "github.com/emre/campushub/internal/app/auth"
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// AnnouncementStore is the persistence surface the announcement service needs
type AnnouncementStore interface {
	Create(ctx context.Context, announcement *models.Announcement) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	ListVisible(ctx context.Context, role models.RoleType, now time.Time) ([]*models.Announcement, error)
	Delete(ctx context.Context, id int64) error
}

// AnnouncementService defines the interface for campus announcement operations
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, authorID int64, role models.RoleType, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	ListAnnouncements(ctx context.Context, role models.RoleType) ([]dto.AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, requesterID int64, role models.RoleType, id int64) error
}

type announcementServiceImpl struct {
	announcementRepo AnnouncementStore
	userRepo         UserDirectory
	now              func() time.Time
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo AnnouncementStore, userRepo UserDirectory, logger zerolog.Logger) AnnouncementService {
	return &announcementServiceImpl{
		announcementRepo: announcementRepo,
		userRepo:         userRepo,
		now:              time.Now,
		logger:           logger,
	}
}

// CreateAnnouncement publishes an announcement targeted at one or more roles
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, authorID int64, role models.RoleType, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if err := appauth.Authorize(role, appauth.ActionAnnouncementCreate); err != nil {
		return nil, err
	}

	for _, audience := range req.TargetAudience {
		if !models.ValidRole(audience) {
			return nil, apperrors.NewValidationError("targetAudience", "unknown role: "+audience)
		}
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(s.now()) {
		return nil, apperrors.NewValidationError("expiresAt", "expiry must be in the future")
	}

	announcement := &models.Announcement{
		AuthorID:       authorID,
		Title:          req.Title,
		Content:        req.Content,
		Category:       req.Category,
		TargetAudience: req.TargetAudience,
		Pinned:         req.Pinned,
		ExpiresAt:      req.ExpiresAt,
	}

	if _, err := s.announcementRepo.Create(ctx, announcement); err != nil {
		s.logger.Error().Err(err).Int64("authorID", authorID).Msg("Failed to create announcement")
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("authorID", authorID).Msg("Failed to resolve announcement author")
	}

	resp := toAnnouncementResponse(announcement, author)
	return &resp, nil
}

// ListAnnouncements returns the announcements visible to the requester's
// role: unexpired, targeted at that role, pinned ones first.
func (s *announcementServiceImpl) ListAnnouncements(ctx context.Context, role models.RoleType) ([]dto.AnnouncementResponse, error) {
	announcements, err := s.announcementRepo.ListVisible(ctx, role, s.now())
	if err != nil {
		s.logger.Error().Err(err).Str("role", string(role)).Msg("Failed to list announcements")
		return nil, err
	}

	ids := make([]int64, 0, len(announcements))
	for _, a := range announcements {
		ids = append(ids, a.AuthorID)
	}
	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve announcement authors")
		users = map[int64]*models.User{}
	}

	responses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		responses = append(responses, toAnnouncementResponse(a, users[a.AuthorID]))
	}
	return responses, nil
}

// DeleteAnnouncement removes an announcement. Admins may delete any;
// lecturers only their own.
func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, requesterID int64, role models.RoleType, id int64) error {
	if err := appauth.Authorize(role, appauth.ActionAnnouncementDelete); err != nil {
		return err
	}

	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && announcement.AuthorID != requesterID {
		return apperrors.NewForbiddenError("You can only delete your own announcements")
	}

	return s.announcementRepo.Delete(ctx, id)
}

func toAnnouncementResponse(a *models.Announcement, author *models.User) dto.AnnouncementResponse {
	resp := dto.AnnouncementResponse{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		Category:       a.Category,
		TargetAudience: a.TargetAudience,
		Pinned:         a.Pinned,
		ExpiresAt:      a.ExpiresAt,
		AuthorName:     UnknownUserName,
		CreatedAt:      a.CreatedAt,
	}
	if author != nil {
		resp.AuthorName = author.DisplayName()
		resp.AuthorRole = string(author.Role)
	}
	return resp
}
