package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/services"
	"github.com/emre/campushub/internal/middleware"
)

// AppointmentController handles appointment booking operations
type AppointmentController struct {
	appointmentService services.AppointmentService
}

// NewAppointmentController creates a new AppointmentController
func NewAppointmentController(appointmentService services.AppointmentService) *AppointmentController {
	return &AppointmentController{appointmentService: appointmentService}
}

// CreateAppointment books a time slot with a lecturer
// @Summary Book an appointment
// @Description Books a PENDING appointment with a lecturer. Students only.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAppointmentRequest true "Appointment details"
// @Success 201 {object} dto.APIResponse{data=dto.AppointmentResponse} "Appointment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appointments [post]
func (c *AppointmentController) CreateAppointment(ctx *gin.Context) {
	userID, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	appointment, err := c.appointmentService.CreateAppointment(ctx, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(appointment))
}

// ListAppointments returns appointments visible to the requester
// @Summary List appointments
// @Description Students see their bookings, lecturers their schedule, admins all
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AppointmentResponse} "Appointments"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appointments [get]
func (c *AppointmentController) ListAppointments(ctx *gin.Context) {
	userID, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	appointments, err := c.appointmentService.ListAppointments(ctx, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appointments))
}

// UpdateStatus moves an appointment through its lifecycle
// @Summary Update appointment status
// @Description Lecturers accept, reject or reschedule; students cancel their own
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.AppointmentResponse} "Updated appointment"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Appointment not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appointments/{id}/status [put]
func (c *AppointmentController) UpdateStatus(ctx *gin.Context) {
	userID, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	appointment, err := c.appointmentService.UpdateStatus(ctx, userID, role, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appointment))
}

// DeleteAppointment removes an appointment record
// @Summary Delete an appointment
// @Description Removes an appointment record entirely. Admin only.
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Appointment deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Appointment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appointments/{id} [delete]
func (c *AppointmentController) DeleteAppointment(ctx *gin.Context) {
	_, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.appointmentService.DeleteAppointment(ctx, role, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Appointment deleted"}))
}
