package dto

import (
	"time"
)

// SendMessageRequest sends a direct message to another user
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageResponse represents a single message in a thread
type MessageResponse struct {
	ID          int64     `json:"id"`
	ChatKey     string    `json:"chatKey"`
	SenderID    int64     `json:"senderId"`
	RecipientID int64     `json:"recipientId"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ConversationResponse summarizes one chat for the conversation list.
// UnreadCount is omitted from the JSON body when zero.
type ConversationResponse struct {
	ChatKey         string    `json:"chatKey" example:"3_7"`
	ContactID       int64     `json:"contactId"`
	ContactName     string    `json:"contactName"`
	ContactRole     string    `json:"contactRole"`
	Online          bool      `json:"online"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime string    `json:"lastMessageTime" example:"02 Jan 15:04"`
	LastMessageAt   time.Time `json:"lastMessageAt"`
	UnreadCount     int       `json:"unreadCount,omitempty"`
}
