package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
	"github.com/emre/campushub/internal/pkg/auth"
	"github.com/emre/campushub/internal/pkg/validation"
)

// UserStore is the persistence surface the auth and user services need.
// It extends the read-only directory with account mutations.
type UserStore interface {
	UserDirectory
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	SetOnlineStatus(ctx context.Context, userID int64, online bool) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserProfileResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userID int64) error
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error)
}

type authServiceImpl struct {
	userRepo       UserStore
	departmentRepo DepartmentStore
	jwtService     *auth.JWTService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, departmentRepo DepartmentStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// Register creates a new account. Admin accounts cannot be self-registered;
// they are provisioned by the seed step.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserProfileResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.ValidEmail(email) {
		return nil, apperrors.NewValidationError("email", "invalid email address")
	}

	role := models.RoleType(req.Role)
	if role != models.RoleStudent && role != models.RoleLecturer {
		return nil, apperrors.NewValidationError("role", "role must be STUDENT or LECTURER")
	}

	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Password:     hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("Registration failed")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User registered")
	return s.toProfile(ctx, user), nil
}

// Login verifies credentials and issues a token pair. The account is
// flagged online as a side effect.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not leak whether the account exists
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate tokens")
		return nil, err
	}

	if err := s.userRepo.SetOnlineStatus(ctx, user.ID, true); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to flag user online")
	}
	user.IsOnline = true

	return &dto.LoginResponse{
		Tokens: dto.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			ExpiresIn:        expiresIn,
			RefreshExpiresIn: refreshExpiresIn,
			TokenType:        "Bearer",
		},
		User: *s.toProfile(ctx, user),
	}, nil
}

// Logout flags the account offline and stamps the last-seen time
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	return s.userRepo.SetOnlineStatus(ctx, userID, false)
}

// GetProfile returns the authenticated user's profile
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toProfile(ctx, user), nil
}

func (s *authServiceImpl) toProfile(ctx context.Context, user *models.User) *dto.UserProfileResponse {
	profile := &dto.UserProfileResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		DepartmentID: user.DepartmentID,
		IsOnline:     user.IsOnline,
		LastSeenAt:   user.LastSeenAt,
	}
	if user.DepartmentID != nil {
		if department, err := s.departmentRepo.GetByID(ctx, *user.DepartmentID); err == nil {
			profile.Department = department.Name
		}
	}
	return profile
}
