package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// AppointmentRepository handles database operations for appointments
type AppointmentRepository struct {
	db *pgxpool.Pool
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// AppointmentFilter scopes an appointment listing. Nil fields are not applied.
type AppointmentFilter struct {
	LecturerID *int64
	StudentID  *int64
	Status     *models.AppointmentStatus
}

// Create inserts a new appointment with status PENDING
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (int64, error) {
	query := `
		INSERT INTO appointments (lecturer_id, student_id, subject, notes, starts_at, ends_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		appointment.LecturerID,
		appointment.StudentID,
		appointment.Subject,
		appointment.Notes,
		appointment.StartsAt,
		appointment.EndsAt,
		models.AppointmentStatusPending,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating appointment: %w", err)
	}

	appointment.Status = models.AppointmentStatusPending
	return appointment.ID, nil
}

// GetByID retrieves an appointment by id
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	query := `
		SELECT id, lecturer_id, student_id, subject, notes, starts_at, ends_at, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var a models.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.LecturerID, &a.StudentID, &a.Subject, &a.Notes,
		&a.StartsAt, &a.EndsAt, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("error retrieving appointment: %w", err)
	}

	return &a, nil
}

// List retrieves appointments matching the filter, soonest first
func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]*models.Appointment, error) {
	queryBuilder := squirrel.Select(
		"id", "lecturer_id", "student_id", "subject", "notes",
		"starts_at", "ends_at", "status", "created_at", "updated_at",
	).
		From("appointments").
		OrderBy("starts_at").
		PlaceholderFormat(squirrel.Dollar)

	if filter.LecturerID != nil {
		queryBuilder = queryBuilder.Where("lecturer_id = ?", *filter.LecturerID)
	}
	if filter.StudentID != nil {
		queryBuilder = queryBuilder.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != nil {
		queryBuilder = queryBuilder.Where("status = ?", *filter.Status)
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		var a models.Appointment
		err := rows.Scan(
			&a.ID, &a.LecturerID, &a.StudentID, &a.Subject, &a.Notes,
			&a.StartsAt, &a.EndsAt, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment row: %w", err)
		}
		appointments = append(appointments, &a)
	}

	return appointments, rows.Err()
}

// UpdateStatus sets the appointment status
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating appointment status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAppointmentNotFound
	}
	return nil
}

// Delete removes an appointment unconditionally
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting appointment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAppointmentNotFound
	}
	return nil
}
