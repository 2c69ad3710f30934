package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

func setupAppointmentService(appointments []*models.Appointment, users ...*models.User) (AppointmentService, *fakeAppointmentStore) {
	store := newFakeAppointmentStore(appointments...)
	svc := NewAppointmentService(store, newFakeUserStore(users...), zerolog.Nop())
	return svc, store
}

// --------------------- CreateAppointment ---------------------

func TestCreateAppointment_Success(t *testing.T) {
	svc, store := setupAppointmentService(nil, studentUser(1), lecturerUser(5))

	start := time.Now().Add(24 * time.Hour)
	resp, err := svc.CreateAppointment(context.Background(), 1, models.RoleStudent, &dto.CreateAppointmentRequest{
		LecturerID: 5,
		Subject:    "Thesis progress",
		StartsAt:   start,
		EndsAt:     start.Add(30 * time.Minute),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(models.AppointmentStatusPending), resp.Status)
	assert.Equal(t, "Mehmet Demir", resp.LecturerName)
	assert.Len(t, store.appointments, 1)
}

func TestCreateAppointment_EndBeforeStart(t *testing.T) {
	svc, _ := setupAppointmentService(nil, studentUser(1), lecturerUser(5))

	start := time.Now().Add(24 * time.Hour)
	_, err := svc.CreateAppointment(context.Background(), 1, models.RoleStudent, &dto.CreateAppointmentRequest{
		LecturerID: 5,
		Subject:    "test",
		StartsAt:   start,
		EndsAt:     start.Add(-time.Minute),
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateAppointment_TargetNotLecturer(t *testing.T) {
	svc, _ := setupAppointmentService(nil, studentUser(1), studentUser(2))

	start := time.Now().Add(24 * time.Hour)
	_, err := svc.CreateAppointment(context.Background(), 1, models.RoleStudent, &dto.CreateAppointmentRequest{
		LecturerID: 2,
		Subject:    "test",
		StartsAt:   start,
		EndsAt:     start.Add(time.Hour),
	})

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateAppointment_LecturerForbidden(t *testing.T) {
	svc, _ := setupAppointmentService(nil, lecturerUser(5))

	start := time.Now().Add(time.Hour)
	_, err := svc.CreateAppointment(context.Background(), 5, models.RoleLecturer, &dto.CreateAppointmentRequest{
		LecturerID: 5,
		Subject:    "test",
		StartsAt:   start,
		EndsAt:     start.Add(time.Hour),
	})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// --------------------- ListAppointments ---------------------

func TestListAppointments_ScopedByRole(t *testing.T) {
	appointments := []*models.Appointment{
		{ID: 1, LecturerID: 5, StudentID: 1, Status: models.AppointmentStatusPending},
		{ID: 2, LecturerID: 6, StudentID: 1, Status: models.AppointmentStatusAccepted},
		{ID: 3, LecturerID: 5, StudentID: 2, Status: models.AppointmentStatusPending},
	}
	svc, _ := setupAppointmentService(appointments, studentUser(1), studentUser(2), lecturerUser(5), lecturerUser(6))

	asStudent, err := svc.ListAppointments(context.Background(), 1, models.RoleStudent)
	assert.NoError(t, err)
	assert.Len(t, asStudent, 2)

	asLecturer, err := svc.ListAppointments(context.Background(), 5, models.RoleLecturer)
	assert.NoError(t, err)
	assert.Len(t, asLecturer, 2)

	asAdmin, err := svc.ListAppointments(context.Background(), 99, models.RoleAdmin)
	assert.NoError(t, err)
	assert.Len(t, asAdmin, 3)
}

// --------------------- UpdateStatus ---------------------

func TestUpdateAppointmentStatus_LecturerAccepts(t *testing.T) {
	appointments := []*models.Appointment{
		{ID: 1, LecturerID: 5, StudentID: 1, Status: models.AppointmentStatusPending},
	}
	svc, store := setupAppointmentService(appointments, studentUser(1), lecturerUser(5))

	resp, err := svc.UpdateStatus(context.Background(), 5, models.RoleLecturer, 1, "ACCEPTED")

	assert.NoError(t, err)
	assert.Equal(t, "ACCEPTED", resp.Status)
	assert.Equal(t, models.AppointmentStatusAccepted, store.appointments[1].Status)
}

func TestUpdateAppointmentStatus_InvalidTransition(t *testing.T) {
	appointments := []*models.Appointment{
		{ID: 1, LecturerID: 5, StudentID: 1, Status: models.AppointmentStatusPending},
	}
	svc, _ := setupAppointmentService(appointments, studentUser(1), lecturerUser(5))

	_, err := svc.UpdateStatus(context.Background(), 5, models.RoleLecturer, 1, "COMPLETED")

	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusChange)
}

func TestUpdateAppointmentStatus_StudentMayOnlyCancel(t *testing.T) {
	appointments := []*models.Appointment{
		{ID: 1, LecturerID: 5, StudentID: 1, Status: models.AppointmentStatusPending},
	}
	svc, store := setupAppointmentService(appointments, studentUser(1), lecturerUser(5))

	_, err := svc.UpdateStatus(context.Background(), 1, models.RoleStudent, 1, "ACCEPTED")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := svc.UpdateStatus(context.Background(), 1, models.RoleStudent, 1, "CANCELLED")
	assert.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, models.AppointmentStatusCancelled, store.appointments[1].Status)
}

func TestUpdateAppointmentStatus_StudentCannotCancelForeign(t *testing.T) {
	appointments := []*models.Appointment{
		{ID: 1, LecturerID: 5, StudentID: 2, Status: models.AppointmentStatusPending},
	}
	svc, _ := setupAppointmentService(appointments, studentUser(1), studentUser(2), lecturerUser(5))

	_, err := svc.UpdateStatus(context.Background(), 1, models.RoleStudent, 1, "CANCELLED")

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateAppointmentStatus_LecturerOwnOnly(t *testing.T) {
	appointments := []*models.Appointment{
		{ID: 1, LecturerID: 5, StudentID: 1, Status: models.AppointmentStatusPending},
	}
	svc, _ := setupAppointmentService(appointments, studentUser(1), lecturerUser(5), lecturerUser(6))

	_, err := svc.UpdateStatus(context.Background(), 6, models.RoleLecturer, 1, "ACCEPTED")

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// --------------------- DeleteAppointment ---------------------

func TestDeleteAppointment_AdminOnly(t *testing.T) {
	appointments := []*models.Appointment{
		{ID: 1, LecturerID: 5, StudentID: 1, Status: models.AppointmentStatusCancelled},
	}
	svc, store := setupAppointmentService(appointments, studentUser(1), lecturerUser(5))

	err := svc.DeleteAppointment(context.Background(), models.RoleLecturer, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Len(t, store.appointments, 1)

	err = svc.DeleteAppointment(context.Background(), models.RoleAdmin, 1)
	assert.NoError(t, err)
	assert.Empty(t, store.appointments)

	err = svc.DeleteAppointment(context.Background(), models.RoleAdmin, 1)
	assert.ErrorIs(t, err, apperrors.ErrAppointmentNotFound)
}
