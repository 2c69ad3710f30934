package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/services"
	"github.com/emre/campushub/internal/middleware"
	"github.com/emre/campushub/internal/pkg/helpers"
)

// LostFoundController handles lost-and-found board operations
type LostFoundController struct {
	lostFoundService services.LostFoundService
}

// NewLostFoundController creates a new LostFoundController
func NewLostFoundController(lostFoundService services.LostFoundService) *LostFoundController {
	return &LostFoundController{lostFoundService: lostFoundService}
}

// CreateListing reports a lost or found item
// @Summary Create a listing
// @Description Reports a lost or found item on the campus-wide board
// @Tags lost-found
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLostFoundRequest true "Listing details"
// @Success 201 {object} dto.APIResponse{data=dto.LostFoundResponse} "Listing created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lost-found [post]
func (c *LostFoundController) CreateListing(ctx *gin.Context) {
	userID, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateLostFoundRequest
	if !bindJSON(ctx, &req) {
		return
	}

	listing, err := c.lostFoundService.CreateListing(ctx, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(listing))
}

// ListListings returns board listings
// @Summary List lost-and-found items
// @Description Returns listings newest first, optionally filtered by type and status
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by type" Enums(LOST, FOUND)
// @Param status query string false "Filter by status" Enums(OPEN, CLAIMED, RETURNED)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse{items=[]dto.LostFoundResponse}} "Listings"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lost-found [get]
func (c *LostFoundController) ListListings(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	listings, err := c.lostFoundService.ListListings(ctx, ctx.Query("type"), ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listings))
}

// UpdateStatus moves a listing through its lifecycle
// @Summary Update listing status
// @Description Moves a listing to CLAIMED or RETURNED. Reporter or admin only.
// @Tags lost-found
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body dto.UpdateLostFoundStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.LostFoundResponse} "Updated listing"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lost-found/{id}/status [put]
func (c *LostFoundController) UpdateStatus(ctx *gin.Context) {
	userID, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLostFoundStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	listing, err := c.lostFoundService.UpdateStatus(ctx, userID, role, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listing))
}

// DeleteListing removes a listing
// @Summary Delete a listing
// @Description Removes a listing. Reporter or admin only.
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Listing deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lost-found/{id} [delete]
func (c *LostFoundController) DeleteListing(ctx *gin.Context) {
	userID, role, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.lostFoundService.DeleteListing(ctx, userID, role, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Listing deleted"}))
}
