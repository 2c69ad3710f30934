package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call
// this for every error a service returns; sentinel checks decide the
// status, the CustomError message (when present) carries the detail.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: validationDetail(err, message),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled"),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: detail(dto.ErrorCodeForbidden, "Permission denied", message),
		})
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrTicketNotFound,
		apperrors.ErrAnnouncementNotFound,
		apperrors.ErrAppointmentNotFound,
		apperrors.ErrForumPostNotFound,
		apperrors.ErrListingNotFound,
		apperrors.ErrDepartmentNotFound):
		c.JSON(404, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceNotFound, "Resource not found", message),
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		})
	case errors.Is(err, apperrors.ErrDepartmentAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Department already exists"),
		})
	case errors.Is(err, apperrors.ErrTicketClosed):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceConflict, "Ticket is closed", message),
		})
	case errors.Is(err, apperrors.ErrInvalidStatusChange):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceConflict, "Invalid status transition", message),
		})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceConflict, "Conflict", message),
		})
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// detail builds an ErrorDetail, preferring the wrapped custom message
func detail(code dto.ErrorCode, fallback, message string) *dto.ErrorDetail {
	if message != "" {
		return dto.NewErrorDetail(code, message)
	}
	return dto.NewErrorDetail(code, fallback)
}

// validationDetail surfaces per-field information for validation errors
func validationDetail(err error, message string) *dto.ErrorDetail {
	var validationErrs *dto.ValidationErrors
	if errors.As(err, &validationErrs) && validationErrs.HasErrors() {
		first := validationErrs.Errors[0]
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, first.Message).WithField(first.Field)
	}

	d := detail(dto.ErrorCodeValidationFailed, "Validation failed", message)
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if field, ok := customErr.Details["field"].(string); ok {
			d = d.WithField(field)
		}
	}
	return d
}
