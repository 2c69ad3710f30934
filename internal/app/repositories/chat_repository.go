package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/campushub/internal/app/models"
)

// ChatRepository handles database operations for direct messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateMessage inserts a new direct message
func (r *ChatRepository) CreateMessage(ctx context.Context, message *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (chat_key, sender_id, recipient_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ChatKey,
		message.SenderID,
		message.RecipientID,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	return message.ID, nil
}

// GetThread retrieves all messages of a chat, oldest first
func (r *ChatRepository) GetThread(ctx context.Context, chatKey string) ([]*models.Message, error) {
	query := `
		SELECT id, chat_key, sender_id, recipient_id, content, is_read, created_at
		FROM messages
		WHERE chat_key = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, chatKey)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.ID, &m.ChatKey, &m.SenderID, &m.RecipientID, &m.Content, &m.IsRead, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &m)
	}

	return messages, rows.Err()
}

// ConversationRow is one chat summary as read from the store: the latest
// message per chat key plus the unread count addressed to the user.
type ConversationRow struct {
	ChatKey     string
	OtherUserID int64
	LastMessage models.Message
	UnreadCount int
}

// ListConversations returns one row per chat the user participates in,
// most recent message first.
func (r *ChatRepository) ListConversations(ctx context.Context, userID int64) ([]ConversationRow, error) {
	// DISTINCT ON leaves rows ordered by chat key; the outer query
	// re-orders by the latest message's timestamp.
	query := `
		SELECT * FROM (
			SELECT DISTINCT ON (m.chat_key)
				m.chat_key,
				CASE WHEN m.sender_id = $1 THEN m.recipient_id ELSE m.sender_id END AS other_user_id,
				m.id, m.sender_id, m.recipient_id, m.content, m.is_read, m.created_at,
				(SELECT COUNT(*) FROM messages u
				  WHERE u.chat_key = m.chat_key AND u.recipient_id = $1 AND NOT u.is_read) AS unread_count
			FROM messages m
			WHERE m.sender_id = $1 OR m.recipient_id = $1
			ORDER BY m.chat_key, m.created_at DESC
		) c
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %w", err)
	}
	defer rows.Close()

	var conversations []ConversationRow
	for rows.Next() {
		var row ConversationRow
		err := rows.Scan(
			&row.ChatKey,
			&row.OtherUserID,
			&row.LastMessage.ID,
			&row.LastMessage.SenderID,
			&row.LastMessage.RecipientID,
			&row.LastMessage.Content,
			&row.LastMessage.IsRead,
			&row.LastMessage.CreatedAt,
			&row.UnreadCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		row.LastMessage.ChatKey = row.ChatKey
		conversations = append(conversations, row)
	}

	return conversations, rows.Err()
}

// MarkRead marks all messages addressed to the user within a chat as read
func (r *ChatRepository) MarkRead(ctx context.Context, chatKey string, recipientID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE messages SET is_read = TRUE WHERE chat_key = $1 AND recipient_id = $2 AND NOT is_read`,
		chatKey, recipientID)
	if err != nil {
		return fmt.Errorf("error marking messages read: %w", err)
	}
	return nil
}
