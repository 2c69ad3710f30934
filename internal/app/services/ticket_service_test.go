package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

func setupTicketService(tickets []*models.Ticket, users ...*models.User) (TicketService, *fakeTicketStore, *fakeUserStore) {
	ticketStore := newFakeTicketStore(tickets...)
	userStore := newFakeUserStore(users...)
	svc := NewTicketService(ticketStore, userStore, zerolog.Nop())
	return svc, ticketStore, userStore
}

func studentUser(id int64) *models.User {
	return &models.User{ID: id, FirstName: "Ayse", LastName: "Yilmaz", Role: models.RoleStudent, IsActive: true}
}

func lecturerUser(id int64) *models.User {
	return &models.User{ID: id, FirstName: "Mehmet", LastName: "Demir", Role: models.RoleLecturer, IsActive: true}
}

// --------------------- CreateTicket ---------------------

func TestCreateTicket_Success(t *testing.T) {
	svc, store, _ := setupTicketService(nil, studentUser(1))

	resp, err := svc.CreateTicket(context.Background(), 1, models.RoleStudent, &dto.CreateTicketRequest{
		Title:       "Library card not working",
		Description: "Turnstile rejects my card since yesterday",
		Category:    "FACILITIES",
		Priority:    "MEDIUM",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(models.TicketStatusOpen), resp.Status)
	assert.Equal(t, int64(1), resp.StudentID)
	assert.Equal(t, "Ayse Yilmaz", resp.StudentName)
	assert.Len(t, store.tickets, 1)
}

func TestCreateTicket_EmptyTitle(t *testing.T) {
	svc, _, _ := setupTicketService(nil, studentUser(1))

	_, err := svc.CreateTicket(context.Background(), 1, models.RoleStudent, &dto.CreateTicketRequest{
		Title:       "   ",
		Description: "something",
		Category:    "IT",
		Priority:    "LOW",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateTicket_FirstMissingFieldReported(t *testing.T) {
	svc, _, _ := setupTicketService(nil, studentUser(1))

	_, err := svc.CreateTicket(context.Background(), 1, models.RoleStudent, &dto.CreateTicketRequest{})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	var customErr *apperrors.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, "title", customErr.Details["field"])
}

func TestCreateTicket_LecturerForbidden(t *testing.T) {
	svc, _, _ := setupTicketService(nil, lecturerUser(2))

	_, err := svc.CreateTicket(context.Background(), 2, models.RoleLecturer, &dto.CreateTicketRequest{
		Title:       "test",
		Description: "test",
		Category:    "IT",
		Priority:    "LOW",
	})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// --------------------- ListTickets ---------------------

func TestListTickets_StudentSeesOnlyOwn(t *testing.T) {
	assignee := int64(5)
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Title: "mine", Status: models.TicketStatusOpen},
		{ID: 2, StudentID: 2, Title: "theirs", Status: models.TicketStatusOpen},
		{ID: 3, StudentID: 1, Title: "also mine", Status: models.TicketStatusInProgress, AssignedTo: &assignee},
	}
	svc, _, _ := setupTicketService(tickets, studentUser(1), studentUser(2), lecturerUser(5))

	resp, err := svc.ListTickets(context.Background(), 1, models.RoleStudent)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	for _, ticket := range resp {
		assert.Equal(t, int64(1), ticket.StudentID)
	}
}

func TestListTickets_LecturerSeesOnlyAssigned(t *testing.T) {
	lecturerID := int64(5)
	otherID := int64(6)
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Status: models.TicketStatusInProgress, AssignedTo: &lecturerID},
		{ID: 2, StudentID: 2, Status: models.TicketStatusInProgress, AssignedTo: &otherID},
		{ID: 3, StudentID: 1, Status: models.TicketStatusOpen},
	}
	svc, _, _ := setupTicketService(tickets, studentUser(1), studentUser(2), lecturerUser(5))

	resp, err := svc.ListTickets(context.Background(), 5, models.RoleLecturer)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, int64(1), resp[0].ID)
}

func TestListTickets_AdminSeesAll(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Status: models.TicketStatusOpen},
		{ID: 2, StudentID: 2, Status: models.TicketStatusClosed},
	}
	svc, _, _ := setupTicketService(tickets, studentUser(1), studentUser(2))

	resp, err := svc.ListTickets(context.Background(), 99, models.RoleAdmin)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
}

// --------------------- AddReply ---------------------

func TestAddReply_ReopensResolvedTicket(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Title: "wifi", Status: models.TicketStatusResolved},
	}
	svc, store, _ := setupTicketService(tickets, studentUser(1))

	resp, err := svc.AddReply(context.Background(), 1, 1, &dto.CreateTicketReplyRequest{
		Message: "still broken in block B",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(models.TicketStatusInProgress), resp.Status)
	assert.Equal(t, models.TicketStatusInProgress, store.tickets[1].Status)
	assert.Len(t, store.tickets[1].Replies, 1)
}

func TestAddReply_ClosedTicketRejected(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Status: models.TicketStatusClosed},
	}
	svc, store, _ := setupTicketService(tickets, studentUser(1))

	_, err := svc.AddReply(context.Background(), 1, 1, &dto.CreateTicketReplyRequest{Message: "hello?"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, store.tickets[1].Replies)
}

func TestAddReply_EmptyMessage(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Status: models.TicketStatusOpen},
	}
	svc, _, _ := setupTicketService(tickets, studentUser(1))

	_, err := svc.AddReply(context.Background(), 1, 1, &dto.CreateTicketReplyRequest{Message: "  "})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAddReply_TicketNotFound(t *testing.T) {
	svc, _, _ := setupTicketService(nil, studentUser(1))

	_, err := svc.AddReply(context.Background(), 42, 1, &dto.CreateTicketReplyRequest{Message: "hi"})

	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

// --------------------- AssignTicket ---------------------

func TestAssignTicket_Success(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Status: models.TicketStatusOpen},
	}
	svc, store, _ := setupTicketService(tickets, studentUser(1), lecturerUser(5))

	err := svc.AssignTicket(context.Background(), models.RoleAdmin, 1, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), *store.tickets[1].AssignedTo)
}

func TestAssignTicket_StudentAssigneeRejected(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Status: models.TicketStatusOpen},
	}
	svc, _, _ := setupTicketService(tickets, studentUser(1), studentUser(2))

	err := svc.AssignTicket(context.Background(), models.RoleAdmin, 1, 2)

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestAssignTicket_NonAdminForbidden(t *testing.T) {
	svc, _, _ := setupTicketService(nil)

	err := svc.AssignTicket(context.Background(), models.RoleLecturer, 1, 5)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// --------------------- SetStatus ---------------------

func TestSetStatus_ResolveTicket(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Status: models.TicketStatusInProgress},
	}
	svc, store, _ := setupTicketService(tickets, studentUser(1))

	err := svc.SetStatus(context.Background(), models.RoleLecturer, 1, "RESOLVED")

	assert.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, store.tickets[1].Status)
}

func TestSetStatus_InvalidTarget(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: 1, StudentID: 1, Status: models.TicketStatusInProgress},
	}
	svc, _, _ := setupTicketService(tickets, studentUser(1))

	err := svc.SetStatus(context.Background(), models.RoleAdmin, 1, "OPEN")

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSetStatus_StudentForbidden(t *testing.T) {
	svc, _, _ := setupTicketService(nil)

	err := svc.SetStatus(context.Background(), models.RoleStudent, 1, "CLOSED")

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
