package dto

import (
	"time"

	"github.com/emre/campushub/internal/app/models"
)

// CreateTicketRequest represents a new support ticket submission
type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
}

// CreateTicketReplyRequest appends a reply to a ticket thread
type CreateTicketReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// AssignTicketRequest assigns a ticket to a staff member
type AssignTicketRequest struct {
	AssigneeID int64 `json:"assigneeId" binding:"required"`
}

// UpdateTicketStatusRequest moves a ticket to a terminal state
type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required" enums:"RESOLVED,CLOSED"`
}

// TicketReplyResponse represents a reply in API responses
type TicketReplyResponse struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TicketResponse represents a ticket enriched with display names
type TicketResponse struct {
	ID           int64                 `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	Priority     string                `json:"priority"`
	Status       string                `json:"status"`
	StudentID    int64                 `json:"studentId"`
	StudentName  string                `json:"studentName"`
	AssignedTo   *int64                `json:"assignedTo,omitempty"`
	AssigneeName string                `json:"assigneeName,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	Replies      []TicketReplyResponse `json:"replies"`
}

// ToTicketReplyResponse converts a reply model to its response form
func ToTicketReplyResponse(r *models.TicketReply) TicketReplyResponse {
	resp := TicketReplyResponse{
		ID:        r.ID,
		AuthorID:  r.AuthorID,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
	if r.Author != nil {
		resp.AuthorName = r.Author.DisplayName()
	}
	return resp
}
