package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/repositories"
	"github.com/emre/campushub/internal/pkg/apperrors"
	"github.com/emre/campushub/internal/pkg/helpers"
)

// ChatStore is the persistence surface the chat service needs
type ChatStore interface {
	CreateMessage(ctx context.Context, message *models.Message) (int64, error)
	GetThread(ctx context.Context, chatKey string) ([]*models.Message, error)
	ListConversations(ctx context.Context, userID int64) ([]repositories.ConversationRow, error)
	MarkRead(ctx context.Context, chatKey string, recipientID int64) error
}

// ChatService defines the interface for direct messaging operations
type ChatService interface {
	SendMessage(ctx context.Context, senderID, recipientID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetThread(ctx context.Context, requesterID, otherID int64) ([]dto.MessageResponse, error)
	ListConversations(ctx context.Context, userID int64) ([]dto.ConversationResponse, error)
	MarkRead(ctx context.Context, requesterID, otherID int64) error
}

type chatServiceImpl struct {
	chatRepo ChatStore
	userRepo UserDirectory
	now      func() time.Time
	logger   zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(chatRepo ChatStore, userRepo UserDirectory, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		chatRepo: chatRepo,
		userRepo: userRepo,
		now:      time.Now,
		logger:   logger,
	}
}

// SendMessage delivers a direct message. The conversation is identified by
// the chat key derived from both participant ids, so either side lands in
// the same thread.
func (s *chatServiceImpl) SendMessage(ctx context.Context, senderID, recipientID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if senderID == recipientID {
		return nil, apperrors.NewBadRequestError("You cannot message yourself")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewValidationError("content", "content is required")
	}

	// Recipient must exist; a dangling id would create an orphan thread.
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	message := &models.Message{
		ChatKey:     models.ChatKey(senderID, recipientID),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     req.Content,
	}

	if _, err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		s.logger.Error().Err(err).Int64("senderID", senderID).Int64("recipientID", recipientID).Msg("Failed to send message")
		return nil, err
	}

	resp := toMessageResponse(message)
	return &resp, nil
}

// GetThread returns the full message history between the requester and
// another user, oldest first.
func (s *chatServiceImpl) GetThread(ctx context.Context, requesterID, otherID int64) ([]dto.MessageResponse, error) {
	messages, err := s.chatRepo.GetThread(ctx, models.ChatKey(requesterID, otherID))
	if err != nil {
		s.logger.Error().Err(err).Int64("requesterID", requesterID).Msg("Failed to load chat thread")
		return nil, err
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, toMessageResponse(m))
	}
	return responses, nil
}

// ListConversations summarizes every chat the user participates in, most
// recent first, with the other party's profile, a humanized timestamp for
// the latest message, and the count of messages not yet read.
func (s *chatServiceImpl) ListConversations(ctx context.Context, userID int64) ([]dto.ConversationResponse, error) {
	rows, err := s.chatRepo.ListConversations(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list conversations")
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.OtherUserID)
	}
	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve conversation contacts")
		users = map[int64]*models.User{}
	}

	now := s.now()
	responses := make([]dto.ConversationResponse, 0, len(rows))
	for _, row := range rows {
		resp := dto.ConversationResponse{
			ChatKey:         row.ChatKey,
			ContactID:       row.OtherUserID,
			ContactName:     displayName(users, row.OtherUserID),
			LastMessage:     row.LastMessage.Content,
			LastMessageTime: helpers.FormatMessageTime(row.LastMessage.CreatedAt, now),
			LastMessageAt:   row.LastMessage.CreatedAt,
			UnreadCount:     row.UnreadCount,
		}
		if contact, ok := users[row.OtherUserID]; ok {
			resp.ContactRole = string(contact.Role)
			resp.Online = contact.IsOnline
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// MarkRead flags every message the other user sent in this thread as read
func (s *chatServiceImpl) MarkRead(ctx context.Context, requesterID, otherID int64) error {
	return s.chatRepo.MarkRead(ctx, models.ChatKey(requesterID, otherID), requesterID)
}

func toMessageResponse(m *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:          m.ID,
		ChatKey:     m.ChatKey,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}
