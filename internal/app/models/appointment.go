package models

import (
	"time"
)

// AppointmentStatus defines the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "PENDING"
	AppointmentStatusAccepted    AppointmentStatus = "ACCEPTED"
	AppointmentStatusRejected    AppointmentStatus = "REJECTED"
	AppointmentStatusCompleted   AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled   AppointmentStatus = "CANCELLED"
	AppointmentStatusRescheduled AppointmentStatus = "RESCHEDULED"
)

// appointmentTransitions holds the allowed status transitions keyed by the
// current state.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:     {AppointmentStatusAccepted, AppointmentStatusRejected, AppointmentStatusCancelled},
	AppointmentStatusAccepted:    {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRescheduled},
	AppointmentStatusRescheduled: {AppointmentStatusAccepted, AppointmentStatusRejected, AppointmentStatusCancelled},
}

// CanTransition reports whether an appointment may move from one status
// to another.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Appointment links a lecturer and a student with a time range, based on
// the 'appointments' table
type Appointment struct {
	ID         int64             `json:"id" db:"id"`
	LecturerID int64             `json:"lecturerId" db:"lecturer_id"`
	StudentID  int64             `json:"studentId" db:"student_id"`
	Subject    string            `json:"subject" db:"subject"`
	Notes      string            `json:"notes,omitempty" db:"notes"`
	StartsAt   time.Time         `json:"startsAt" db:"starts_at"`
	EndsAt     time.Time         `json:"endsAt" db:"ends_at"`
	Status     AppointmentStatus `json:"status" db:"status"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time         `json:"updatedAt" db:"updated_at"`
	Lecturer   *User             `json:"lecturer,omitempty"` // Relation, no db tag
	Student    *User             `json:"student,omitempty"`  // Relation, no db tag
}
