package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appauth "github.com/emre/campushub/internal/app/auth"
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/repositories"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// AppointmentStore is the persistence surface the appointment service needs
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	List(ctx context.Context, filter repositories.AppointmentFilter) ([]*models.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	CreateAppointment(ctx context.Context, studentID int64, role models.RoleType, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, requesterID int64, role models.RoleType) ([]dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, requesterID int64, role models.RoleType, id int64, status string) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, role models.RoleType, id int64) error
}

type appointmentServiceImpl struct {
	appointmentRepo AppointmentStore
	userRepo        UserDirectory
	logger          zerolog.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appointmentRepo AppointmentStore, userRepo UserDirectory, logger zerolog.Logger) AppointmentService {
	return &appointmentServiceImpl{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// CreateAppointment books a time slot with a lecturer. The appointment
// starts out PENDING until the lecturer decides on it.
func (s *appointmentServiceImpl) CreateAppointment(ctx context.Context, studentID int64, role models.RoleType, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := appauth.Authorize(role, appauth.ActionAppointmentCreate); err != nil {
		return nil, err
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewValidationError("endsAt", "end must be after start")
	}

	lecturer, err := s.userRepo.GetByID(ctx, req.LecturerID)
	if err != nil {
		return nil, err
	}
	if lecturer.Role != models.RoleLecturer {
		return nil, apperrors.NewBadRequestError("Appointments can only be booked with lecturers")
	}

	appointment := &models.Appointment{
		LecturerID: req.LecturerID,
		StudentID:  studentID,
		Subject:    req.Subject,
		Notes:      req.Notes,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
	}

	if _, err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to create appointment")
		return nil, err
	}

	resp := s.toResponse(ctx, appointment)
	return &resp, nil
}

// ListAppointments returns appointments scoped to the requester: students
// see the ones they booked, lecturers the ones booked with them, admins all.
func (s *appointmentServiceImpl) ListAppointments(ctx context.Context, requesterID int64, role models.RoleType) ([]dto.AppointmentResponse, error) {
	filter := repositories.AppointmentFilter{}
	switch role {
	case models.RoleStudent:
		filter.StudentID = &requesterID
	case models.RoleLecturer:
		filter.LecturerID = &requesterID
	case models.RoleAdmin:
		// no scoping
	default:
		return nil, apperrors.NewForbiddenError("Unknown role")
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Int64("requesterID", requesterID).Msg("Failed to list appointments")
		return nil, err
	}

	users := s.lookupUsers(ctx, appointments)

	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		responses = append(responses, enrichAppointment(a, users))
	}
	return responses, nil
}

// UpdateStatus moves an appointment through its lifecycle. Lecturers and
// admins decide on pending requests; students may only cancel their own.
func (s *appointmentServiceImpl) UpdateStatus(ctx context.Context, requesterID int64, role models.RoleType, id int64, status string) (*dto.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := models.AppointmentStatus(status)
	if role == models.RoleStudent {
		if appointment.StudentID != requesterID {
			return nil, apperrors.NewForbiddenError("You can only manage your own appointments")
		}
		if target != models.AppointmentStatusCancelled {
			return nil, apperrors.NewForbiddenError("Students may only cancel appointments")
		}
	} else {
		if err := appauth.Authorize(role, appauth.ActionAppointmentDecide); err != nil {
			return nil, err
		}
		if role == models.RoleLecturer && appointment.LecturerID != requesterID {
			return nil, apperrors.NewForbiddenError("You can only manage appointments booked with you")
		}
	}

	if !appointment.Status.CanTransition(target) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatusChange,
			fmt.Sprintf("Cannot move appointment from %s to %s", appointment.Status, target))
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, target); err != nil {
		s.logger.Error().Err(err).Int64("appointmentID", id).Msg("Failed to update appointment status")
		return nil, err
	}

	appointment.Status = target
	resp := s.toResponse(ctx, appointment)
	return &resp, nil
}

// DeleteAppointment removes an appointment record entirely. Restricted to
// admins; everyone else cancels through the status endpoint.
func (s *appointmentServiceImpl) DeleteAppointment(ctx context.Context, role models.RoleType, id int64) error {
	if err := appauth.Authorize(role, appauth.ActionAppointmentDelete); err != nil {
		return err
	}
	return s.appointmentRepo.Delete(ctx, id)
}

func (s *appointmentServiceImpl) lookupUsers(ctx context.Context, appointments []*models.Appointment) map[int64]*models.User {
	idSet := make(map[int64]struct{})
	for _, a := range appointments {
		idSet[a.LecturerID] = struct{}{}
		idSet[a.StudentID] = struct{}{}
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve user names for appointments")
		return map[int64]*models.User{}
	}
	return users
}

func enrichAppointment(a *models.Appointment, users map[int64]*models.User) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:           a.ID,
		LecturerID:   a.LecturerID,
		LecturerName: displayName(users, a.LecturerID),
		StudentID:    a.StudentID,
		StudentName:  displayName(users, a.StudentID),
		Subject:      a.Subject,
		Notes:        a.Notes,
		StartsAt:     a.StartsAt,
		EndsAt:       a.EndsAt,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
	}
}

func (s *appointmentServiceImpl) toResponse(ctx context.Context, a *models.Appointment) dto.AppointmentResponse {
	users := s.lookupUsers(ctx, []*models.Appointment{a})
	return enrichAppointment(a, users)
}
