package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/emre/campushub/internal/app/models"
	appRepos "github.com/emre/campushub/internal/app/repositories"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// Default admin credentials, meant to be rotated immediately after the
// first login.
const (
	defaultAdminEmail    = "admin@campushub.app"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData creates default departments and the admin account
// if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (departments, admin account)...")
	var finalErr error

	defaults := []appModels.Department{
		{Name: "Computer Engineering", Code: "CENG"},
		{Name: "Electrical Engineering", Code: "EEE"},
		{Name: "Mathematics", Code: "MATH"},
		{Name: "Physics", Code: "PHYS"},
	}
	for i := range defaults {
		if _, err := departmentRepo.Create(ctx, &defaults[i]); err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", defaults[i].Code).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Admin account. Registration never produces admins, so one has to
	// exist out of the box.
	if _, err := userRepo.GetByEmail(ctx, defaultAdminEmail); err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Msg("Error checking for admin account")
			return errors.Join(finalErr, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			return errors.Join(finalErr, err)
		}

		admin := &appModels.User{
			Email:     defaultAdminEmail,
			Password:  string(hashed),
			FirstName: "System",
			LastName:  "Administrator",
			Role:      appModels.RoleAdmin,
			IsActive:  true,
		}
		if _, err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default admin account")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
		}
	}

	return finalErr
}
