package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/services"
	"github.com/emre/campushub/internal/middleware"
)

// TicketController handles support ticket operations
type TicketController struct {
	ticketService services.TicketService
}

// NewTicketController creates a new TicketController
func NewTicketController(ticketService services.TicketService) *TicketController {
	return &TicketController{ticketService: ticketService}
}

// CreateTicket opens a support ticket
// @Summary Create a support ticket
// @Description Opens a new support ticket for the authenticated student
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTicketRequest true "Ticket information"
// @Success 201 {object} dto.APIResponse{data=dto.TicketResponse} "Ticket created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets [post]
func (c *TicketController) CreateTicket(ctx *gin.Context) {
	userID, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateTicketRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ticket, err := c.ticketService.CreateTicket(ctx, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(ticket))
}

// ListTickets returns tickets visible to the requester
// @Summary List tickets
// @Description Students see their own tickets, lecturers the ones assigned to them, admins all
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.TicketResponse} "Tickets"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets [get]
func (c *TicketController) ListTickets(ctx *gin.Context) {
	userID, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	tickets, err := c.ticketService.ListTickets(ctx, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tickets))
}

// AddReply appends a reply to a ticket
// @Summary Reply to a ticket
// @Description Appends a reply; the ticket moves to IN_PROGRESS unless closed
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body dto.CreateTicketReplyRequest true "Reply message"
// @Success 200 {object} dto.APIResponse{data=dto.TicketResponse} "Updated ticket"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Failure 409 {object} dto.ErrorResponse "Ticket is closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets/{id}/replies [post]
func (c *TicketController) AddReply(ctx *gin.Context) {
	userID, _, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	ticketID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateTicketReplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ticket, err := c.ticketService.AddReply(ctx, ticketID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ticket))
}

// AssignTicket assigns a ticket to a staff member
// @Summary Assign a ticket
// @Description Assigns a ticket to a lecturer or admin. Admin only.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body dto.AssignTicketRequest true "Assignee"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Ticket assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Ticket or assignee not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets/{id}/assign [put]
func (c *TicketController) AssignTicket(ctx *gin.Context) {
	_, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	ticketID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignTicketRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.ticketService.AssignTicket(ctx, role, ticketID, req.AssigneeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Ticket assigned"}))
}

// UpdateStatus moves a ticket to RESOLVED or CLOSED
// @Summary Update ticket status
// @Description Moves a ticket to RESOLVED or CLOSED. Staff only.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body dto.UpdateTicketStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets/{id}/status [put]
func (c *TicketController) UpdateStatus(ctx *gin.Context) {
	_, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	ticketID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTicketStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.ticketService.SetStatus(ctx, role, ticketID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Ticket status updated"}))
}
