package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/emre/campushub/internal/app/auth"
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
	"github.com/emre/campushub/internal/pkg/auth"
)

// UserService defines the interface for account management operations
type UserService interface {
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, role models.RoleType, req *dto.ResetPasswordRequest) error
	UpdateStatus(ctx context.Context, userID int64, online bool) error
}

type userServiceImpl struct {
	userRepo UserStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ChangePassword rotates the requester's own password after verifying
// the current one
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

// ResetPassword sets a new password on another account. Admin only.
func (s *userServiceImpl) ResetPassword(ctx context.Context, role models.RoleType, req *dto.ResetPasswordRequest) error {
	if err := appauth.Authorize(role, appauth.ActionUserResetPassword); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, req.UserID, hashed); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", req.UserID).Msg("Password reset by admin")
	return nil
}

// UpdateStatus toggles the requester's presence flag. Going offline
// stamps the last-seen time.
func (s *userServiceImpl) UpdateStatus(ctx context.Context, userID int64, online bool) error {
	return s.userRepo.SetOnlineStatus(ctx, userID, online)
}
