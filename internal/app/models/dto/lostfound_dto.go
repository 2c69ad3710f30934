package dto

import (
	"time"
)

// CreateLostFoundRequest reports a lost or found item
type CreateLostFoundRequest struct {
	Type        string `json:"type" binding:"required" enums:"LOST,FOUND"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
}

// UpdateLostFoundStatusRequest moves a listing through its lifecycle
type UpdateLostFoundStatusRequest struct {
	Status string `json:"status" binding:"required" enums:"OPEN,CLAIMED,RETURNED"`
}

// LostFoundResponse represents a listing enriched with the reporter's name
type LostFoundResponse struct {
	ID           int64     `json:"id"`
	ReporterID   int64     `json:"reporterId"`
	ReporterName string    `json:"reporterName"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
