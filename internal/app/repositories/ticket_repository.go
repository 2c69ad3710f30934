package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// TicketRepository handles database operations for support tickets
type TicketRepository struct {
	db *pgxpool.Pool
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db}
}

// TicketFilter scopes a ticket listing. Nil fields are not applied.
type TicketFilter struct {
	StudentID  *int64
	AssignedTo *int64
	Status     *models.TicketStatus
}

// Create inserts a new ticket with status OPEN and no replies
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) (int64, error) {
	query := `
		INSERT INTO tickets (student_id, title, description, category, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		ticket.StudentID,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		models.TicketStatusOpen,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating ticket: %w", err)
	}

	ticket.Status = models.TicketStatusOpen
	return ticket.ID, nil
}

// GetByID retrieves a ticket with its replies
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	query := `
		SELECT id, student_id, assigned_to, title, description, category, priority, status, created_at, updated_at
		FROM tickets
		WHERE id = $1
	`

	var ticket models.Ticket
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.StudentID,
		&ticket.AssignedTo,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("error retrieving ticket: %w", err)
	}

	replies, err := r.getReplies(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Replies = replies

	return &ticket, nil
}

// List retrieves tickets matching the filter, newest first, replies included
func (r *TicketRepository) List(ctx context.Context, filter TicketFilter) ([]*models.Ticket, error) {
	queryBuilder := squirrel.Select(
		"id", "student_id", "assigned_to", "title", "description",
		"category", "priority", "status", "created_at", "updated_at",
	).
		From("tickets").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StudentID != nil {
		queryBuilder = queryBuilder.Where("student_id = ?", *filter.StudentID)
	}
	if filter.AssignedTo != nil {
		queryBuilder = queryBuilder.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Status != nil {
		queryBuilder = queryBuilder.Where("status = ?", *filter.Status)
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		var t models.Ticket
		err := rows.Scan(
			&t.ID, &t.StudentID, &t.AssignedTo, &t.Title, &t.Description,
			&t.Category, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning ticket row: %w", err)
		}
		tickets = append(tickets, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket rows: %w", err)
	}

	for _, t := range tickets {
		replies, err := r.getReplies(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Replies = replies
	}

	return tickets, nil
}

// AddReply appends a reply and sets the ticket status in one transaction
func (r *TicketRepository) AddReply(ctx context.Context, reply *models.TicketReply, newStatus models.TicketStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO ticket_replies (ticket_id, author_id, message) VALUES ($1, $2, $3) RETURNING id, created_at`,
		reply.TicketID, reply.AuthorID, reply.Message,
	).Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating ticket reply: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE tickets SET status = $1, updated_at = NOW() WHERE id = $2`,
		newStatus, reply.TicketID)
	if err != nil {
		return fmt.Errorf("error updating ticket status: %w", err)
	}

	return tx.Commit(ctx)
}

// Assign sets the assignee of a ticket
func (r *TicketRepository) Assign(ctx context.Context, ticketID, assigneeID int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE tickets SET assigned_to = $1, updated_at = NOW() WHERE id = $2`,
		assigneeID, ticketID)
	if err != nil {
		return fmt.Errorf("error assigning ticket: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

// UpdateStatus sets the ticket status
func (r *TicketRepository) UpdateStatus(ctx context.Context, ticketID int64, status models.TicketStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE tickets SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, ticketID)
	if err != nil {
		return fmt.Errorf("error updating ticket status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) getReplies(ctx context.Context, ticketID int64) ([]models.TicketReply, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, ticket_id, author_id, message, created_at
		 FROM ticket_replies WHERE ticket_id = $1 ORDER BY created_at`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("error querying ticket replies: %w", err)
	}
	defer rows.Close()

	var replies []models.TicketReply
	for rows.Next() {
		var reply models.TicketReply
		if err := rows.Scan(&reply.ID, &reply.TicketID, &reply.AuthorID, &reply.Message, &reply.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning ticket reply row: %w", err)
		}
		replies = append(replies, reply)
	}

	return replies, rows.Err()
}
