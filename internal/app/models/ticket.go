package models

import (
	"time"
)

// TicketStatus defines the lifecycle state of a support ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// replyTransitions maps the current ticket status to the status after a
// reply is appended. CLOSED is absent: closed tickets reject new replies.
var replyTransitions = map[TicketStatus]TicketStatus{
	TicketStatusOpen:       TicketStatusInProgress,
	TicketStatusInProgress: TicketStatusInProgress,
	TicketStatusResolved:   TicketStatusInProgress,
}

// StatusAfterReply returns the status a ticket takes when a reply is
// appended while in the given state, or false when replies are not allowed.
func StatusAfterReply(current TicketStatus) (TicketStatus, bool) {
	next, ok := replyTransitions[current]
	return next, ok
}

// Ticket defines a support ticket based on the 'tickets' table
type Ticket struct {
	ID          int64         `json:"id" db:"id"`
	StudentID   int64         `json:"studentId" db:"student_id"`
	AssignedTo  *int64        `json:"assignedTo,omitempty" db:"assigned_to"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Category    string        `json:"category" db:"category"`
	Priority    string        `json:"priority" db:"priority"`
	Status      TicketStatus  `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
	Replies     []TicketReply `json:"replies,omitempty"`
	Student     *User         `json:"student,omitempty"`  // Relation, no db tag
	Assignee    *User         `json:"assignee,omitempty"` // Relation, no db tag
}

// TicketReply defines a single reply embedded in a ticket thread.
// Replies are append-only.
type TicketReply struct {
	ID        int64     `json:"id" db:"id"`
	TicketID  int64     `json:"ticketId" db:"ticket_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Author    *User     `json:"author,omitempty"` // Relation, no db tag
}
