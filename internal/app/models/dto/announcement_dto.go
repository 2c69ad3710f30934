package dto

import (
	"time"
)

// CreateAnnouncementRequest represents a new announcement
type CreateAnnouncementRequest struct {
	Title          string     `json:"title" binding:"required"`
	Content        string     `json:"content" binding:"required"`
	Category       string     `json:"category" binding:"required"`
	TargetAudience []string   `json:"targetAudience" binding:"required,min=1"`
	Pinned         bool       `json:"pinned"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// AnnouncementResponse represents an announcement enriched with author info
type AnnouncementResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Category       string     `json:"category"`
	TargetAudience []string   `json:"targetAudience"`
	Pinned         bool       `json:"pinned"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	AuthorName     string     `json:"authorName" example:"Jane Smith"`
	AuthorRole     string     `json:"authorRole" example:"LECTURER"`
	CreatedAt      time.Time  `json:"createdAt"`
}
