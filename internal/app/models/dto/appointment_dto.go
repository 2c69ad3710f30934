package dto

import (
	"time"
)

// CreateAppointmentRequest books a lecturer time slot
type CreateAppointmentRequest struct {
	LecturerID int64     `json:"lecturerId" binding:"required"`
	Subject    string    `json:"subject" binding:"required"`
	Notes      string    `json:"notes"`
	StartsAt   time.Time `json:"startsAt" binding:"required"`
	EndsAt     time.Time `json:"endsAt" binding:"required"`
}

// UpdateAppointmentStatusRequest moves an appointment through its lifecycle
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required" enums:"ACCEPTED,REJECTED,COMPLETED,CANCELLED,RESCHEDULED"`
}

// AppointmentResponse represents an appointment enriched with names
type AppointmentResponse struct {
	ID           int64     `json:"id"`
	LecturerID   int64     `json:"lecturerId"`
	LecturerName string    `json:"lecturerName"`
	StudentID    int64     `json:"studentId"`
	StudentName  string    `json:"studentName"`
	Subject      string    `json:"subject"`
	Notes        string    `json:"notes,omitempty"`
	StartsAt     time.Time `json:"startsAt"`
	EndsAt       time.Time `json:"endsAt"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
