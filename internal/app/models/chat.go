package models

import (
	"fmt"
	"time"
)

// ChatKey derives the canonical identifier for a two-party conversation:
// the participant ids sorted ascending and joined with an underscore, so
// both participants resolve to the same chat.
func ChatKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// Message defines a direct message based on the 'messages' table.
// Messages reference their conversation by the derived chat key.
type Message struct {
	ID          int64     `json:"id" db:"id"`
	ChatKey     string    `json:"chatKey" db:"chat_key"`
	SenderID    int64     `json:"senderId" db:"sender_id"`
	RecipientID int64     `json:"recipientId" db:"recipient_id"`
	Content     string    `json:"content" db:"content"`
	IsRead      bool      `json:"isRead" db:"is_read"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	Sender      *User     `json:"sender,omitempty"` // Relation, no db tag
}
