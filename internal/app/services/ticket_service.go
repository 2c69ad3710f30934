package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	appauth "github.com/emre/campushub/internal/app/auth"
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/repositories"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// TicketStore is the persistence surface the ticket service needs
type TicketStore interface {
	Create(ctx context.Context, ticket *models.Ticket) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Ticket, error)
	List(ctx context.Context, filter repositories.TicketFilter) ([]*models.Ticket, error)
	AddReply(ctx context.Context, reply *models.TicketReply, newStatus models.TicketStatus) error
	Assign(ctx context.Context, ticketID, assigneeID int64) error
	UpdateStatus(ctx context.Context, ticketID int64, status models.TicketStatus) error
}

// TicketService defines the interface for support ticket operations
type TicketService interface {
	CreateTicket(ctx context.Context, requesterID int64, role models.RoleType, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	ListTickets(ctx context.Context, requesterID int64, role models.RoleType) ([]dto.TicketResponse, error)
	AddReply(ctx context.Context, ticketID, authorID int64, req *dto.CreateTicketReplyRequest) (*dto.TicketResponse, error)
	AssignTicket(ctx context.Context, role models.RoleType, ticketID, assigneeID int64) error
	SetStatus(ctx context.Context, role models.RoleType, ticketID int64, status string) error
}

// ticketServiceImpl implements TicketService
type ticketServiceImpl struct {
	ticketRepo TicketStore
	userRepo   UserDirectory
	logger     zerolog.Logger
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo TicketStore, userRepo UserDirectory, logger zerolog.Logger) TicketService {
	return &ticketServiceImpl{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// CreateTicket persists a new ticket with status OPEN and no replies
func (s *ticketServiceImpl) CreateTicket(ctx context.Context, requesterID int64, role models.RoleType, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if err := appauth.Authorize(role, appauth.ActionTicketCreate); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", req.Title},
		{"description", req.Description},
		{"category", req.Category},
		{"priority", req.Priority},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperrors.NewValidationError(f.name, f.name+" is required")
		}
	}

	ticket := &models.Ticket{
		StudentID:   requesterID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	}

	if _, err := s.ticketRepo.Create(ctx, ticket); err != nil {
		s.logger.Error().Err(err).Int64("studentID", requesterID).Msg("Failed to create ticket")
		return nil, err
	}

	resp := s.toResponse(ctx, ticket)
	return &resp, nil
}

// ListTickets returns tickets scoped by requester role, newest first.
// Students see their own tickets, lecturers the ones assigned to them,
// admins all of them.
func (s *ticketServiceImpl) ListTickets(ctx context.Context, requesterID int64, role models.RoleType) ([]dto.TicketResponse, error) {
	filter := repositories.TicketFilter{}
	switch role {
	case models.RoleStudent:
		filter.StudentID = &requesterID
	case models.RoleLecturer:
		filter.AssignedTo = &requesterID
	case models.RoleAdmin:
		// no scoping
	default:
		return nil, apperrors.NewForbiddenError("Unknown role")
	}

	tickets, err := s.ticketRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Int64("requesterID", requesterID).Msg("Failed to list tickets")
		return nil, err
	}

	users := s.lookupUsers(ctx, tickets)

	responses := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		responses = append(responses, s.enrich(t, users))
	}
	return responses, nil
}

// AddReply appends a reply and moves the ticket through the reply
// transition table. Closed tickets reject replies.
func (s *ticketServiceImpl) AddReply(ctx context.Context, ticketID, authorID int64, req *dto.CreateTicketReplyRequest) (*dto.TicketResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewValidationError("message", "message is required")
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	newStatus, ok := models.StatusAfterReply(ticket.Status)
	if !ok {
		return nil, apperrors.NewConflictError("Ticket is closed and cannot receive replies")
	}

	reply := &models.TicketReply{
		TicketID: ticketID,
		AuthorID: authorID,
		Message:  req.Message,
	}
	if err := s.ticketRepo.AddReply(ctx, reply, newStatus); err != nil {
		s.logger.Error().Err(err).Int64("ticketID", ticketID).Msg("Failed to add ticket reply")
		return nil, err
	}

	ticket.Status = newStatus
	ticket.Replies = append(ticket.Replies, *reply)

	resp := s.toResponse(ctx, ticket)
	return &resp, nil
}

// AssignTicket assigns a ticket to a staff member
func (s *ticketServiceImpl) AssignTicket(ctx context.Context, role models.RoleType, ticketID, assigneeID int64) error {
	if err := appauth.Authorize(role, appauth.ActionTicketAssign); err != nil {
		return err
	}

	assignee, err := s.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		return err
	}
	if assignee.Role == models.RoleStudent {
		return apperrors.NewBadRequestError("Tickets can only be assigned to staff")
	}

	return s.ticketRepo.Assign(ctx, ticketID, assigneeID)
}

// SetStatus moves a ticket to RESOLVED or CLOSED
func (s *ticketServiceImpl) SetStatus(ctx context.Context, role models.RoleType, ticketID int64, status string) error {
	if err := appauth.Authorize(role, appauth.ActionTicketSetStatus); err != nil {
		return err
	}

	target := models.TicketStatus(status)
	if target != models.TicketStatusResolved && target != models.TicketStatusClosed {
		return apperrors.NewValidationError("status", "status must be RESOLVED or CLOSED")
	}

	return s.ticketRepo.UpdateStatus(ctx, ticketID, target)
}

// lookupUsers prefetches every user referenced by the tickets. Lookup
// failures degrade to placeholder names in enrich.
func (s *ticketServiceImpl) lookupUsers(ctx context.Context, tickets []*models.Ticket) map[int64]*models.User {
	idSet := make(map[int64]struct{})
	for _, t := range tickets {
		idSet[t.StudentID] = struct{}{}
		if t.AssignedTo != nil {
			idSet[*t.AssignedTo] = struct{}{}
		}
		for _, r := range t.Replies {
			idSet[r.AuthorID] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve user names for tickets")
		return map[int64]*models.User{}
	}
	return users
}

func (s *ticketServiceImpl) enrich(t *models.Ticket, users map[int64]*models.User) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		Status:      string(t.Status),
		StudentID:   t.StudentID,
		StudentName: displayName(users, t.StudentID),
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Replies:     make([]dto.TicketReplyResponse, 0, len(t.Replies)),
	}
	if t.AssignedTo != nil {
		resp.AssigneeName = displayName(users, *t.AssignedTo)
	}
	for i := range t.Replies {
		r := &t.Replies[i]
		resp.Replies = append(resp.Replies, dto.TicketReplyResponse{
			ID:         r.ID,
			AuthorID:   r.AuthorID,
			AuthorName: displayName(users, r.AuthorID),
			Message:    r.Message,
			CreatedAt:  r.CreatedAt,
		})
	}
	return resp
}

func (s *ticketServiceImpl) toResponse(ctx context.Context, t *models.Ticket) dto.TicketResponse {
	users := s.lookupUsers(ctx, []*models.Ticket{t})
	return s.enrich(t, users)
}
