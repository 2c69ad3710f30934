package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/emre/campushub/internal/app/auth"
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/repositories"
	"github.com/emre/campushub/internal/pkg/apperrors"
	"github.com/emre/campushub/internal/pkg/helpers"
)

// LostFoundStore is the persistence surface the lost-and-found service needs
type LostFoundStore interface {
	Create(ctx context.Context, item *models.LostFoundItem) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.LostFoundItem, error)
	List(ctx context.Context, filter repositories.LostFoundFilter) ([]*models.LostFoundItem, error)
	Count(ctx context.Context, filter repositories.LostFoundFilter) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.LostFoundStatus) error
	Delete(ctx context.Context, id int64) error
}

// LostFoundService defines the interface for lost-and-found operations
type LostFoundService interface {
	CreateListing(ctx context.Context, reporterID int64, role models.RoleType, req *dto.CreateLostFoundRequest) (*dto.LostFoundResponse, error)
	ListListings(ctx context.Context, itemType, status string, page, size int) (*dto.PagedResponse, error)
	UpdateStatus(ctx context.Context, requesterID int64, role models.RoleType, id int64, status string) (*dto.LostFoundResponse, error)
	DeleteListing(ctx context.Context, requesterID int64, role models.RoleType, id int64) error
}

type lostFoundServiceImpl struct {
	lostFoundRepo LostFoundStore
	userRepo      UserDirectory
	logger        zerolog.Logger
}

// NewLostFoundService creates a new LostFoundService
func NewLostFoundService(lostFoundRepo LostFoundStore, userRepo UserDirectory, logger zerolog.Logger) LostFoundService {
	return &lostFoundServiceImpl{
		lostFoundRepo: lostFoundRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

// CreateListing reports a lost or found item. Listings start OPEN.
func (s *lostFoundServiceImpl) CreateListing(ctx context.Context, reporterID int64, role models.RoleType, req *dto.CreateLostFoundRequest) (*dto.LostFoundResponse, error) {
	if err := appauth.Authorize(role, appauth.ActionLostFoundCreate); err != nil {
		return nil, err
	}

	itemType := models.LostFoundType(req.Type)
	if itemType != models.LostFoundTypeLost && itemType != models.LostFoundTypeFound {
		return nil, apperrors.NewValidationError("type", "type must be LOST or FOUND")
	}

	item := &models.LostFoundItem{
		ReporterID:  reporterID,
		Type:        itemType,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}

	if _, err := s.lostFoundRepo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Int64("reporterID", reporterID).Msg("Failed to create lost-and-found listing")
		return nil, err
	}

	resp := s.toResponse(ctx, item)
	return &resp, nil
}

// ListListings returns one page of listings newest first, optionally
// filtered by type and status. The board is campus-wide, no role scoping.
func (s *lostFoundServiceImpl) ListListings(ctx context.Context, itemType, status string, page, size int) (*dto.PagedResponse, error) {
	filter := repositories.LostFoundFilter{}
	if itemType != "" {
		t := models.LostFoundType(itemType)
		if t != models.LostFoundTypeLost && t != models.LostFoundTypeFound {
			return nil, apperrors.NewValidationError("type", "type must be LOST or FOUND")
		}
		filter.Type = &t
	}
	if status != "" {
		st := models.LostFoundStatus(status)
		if !validLostFoundStatus(st) {
			return nil, apperrors.NewValidationError("status", "status must be OPEN, CLAIMED or RETURNED")
		}
		filter.Status = &st
	}

	filter.Offset, filter.Limit = helpers.CalculateOffsetLimit(page, size)

	items, err := s.lostFoundRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list lost-and-found items")
		return nil, err
	}

	total, err := s.lostFoundRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count lost-and-found items")
		return nil, err
	}

	users := s.lookupReporters(ctx, items)

	responses := make([]dto.LostFoundResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, enrichListing(item, users))
	}

	return &dto.PagedResponse{
		Items:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, filter.Limit),
	}, nil
}

// UpdateStatus moves a listing to CLAIMED or RETURNED. Only the reporter
// or an admin may do so.
func (s *lostFoundServiceImpl) UpdateStatus(ctx context.Context, requesterID int64, role models.RoleType, id int64, status string) (*dto.LostFoundResponse, error) {
	st := models.LostFoundStatus(status)
	if !validLostFoundStatus(st) {
		return nil, apperrors.NewValidationError("status", "status must be OPEN, CLAIMED or RETURNED")
	}

	item, err := s.lostFoundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && item.ReporterID != requesterID {
		return nil, apperrors.NewForbiddenError("You can only update your own listings")
	}

	if err := s.lostFoundRepo.UpdateStatus(ctx, id, st); err != nil {
		s.logger.Error().Err(err).Int64("listingID", id).Msg("Failed to update listing status")
		return nil, err
	}

	item.Status = st
	resp := s.toResponse(ctx, item)
	return &resp, nil
}

// DeleteListing removes a listing. Only the reporter or an admin may do so.
func (s *lostFoundServiceImpl) DeleteListing(ctx context.Context, requesterID int64, role models.RoleType, id int64) error {
	item, err := s.lostFoundRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && item.ReporterID != requesterID {
		return apperrors.NewForbiddenError("You can only delete your own listings")
	}
	return s.lostFoundRepo.Delete(ctx, id)
}

func validLostFoundStatus(s models.LostFoundStatus) bool {
	switch s {
	case models.LostFoundStatusOpen, models.LostFoundStatusClaimed, models.LostFoundStatusReturned:
		return true
	}
	return false
}

func (s *lostFoundServiceImpl) lookupReporters(ctx context.Context, items []*models.LostFoundItem) map[int64]*models.User {
	idSet := make(map[int64]struct{})
	for _, item := range items {
		idSet[item.ReporterID] = struct{}{}
	}
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve reporter names")
		return map[int64]*models.User{}
	}
	return users
}

func enrichListing(item *models.LostFoundItem, users map[int64]*models.User) dto.LostFoundResponse {
	return dto.LostFoundResponse{
		ID:           item.ID,
		ReporterID:   item.ReporterID,
		ReporterName: displayName(users, item.ReporterID),
		Type:         string(item.Type),
		Title:        item.Title,
		Description:  item.Description,
		Location:     item.Location,
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt,
	}
}

func (s *lostFoundServiceImpl) toResponse(ctx context.Context, item *models.LostFoundItem) dto.LostFoundResponse {
	users := s.lookupReporters(ctx, []*models.LostFoundItem{item})
	return enrichListing(item, users)
}
