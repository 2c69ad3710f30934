package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/services"
	"github.com/emre/campushub/internal/middleware"
)

// ForumController handles department forum operations. Forum visibility
// depends on the requester's department, so handlers load the full user.
type ForumController struct {
	forumService services.ForumService
	userRepo     services.UserDirectory
}

// NewForumController creates a new ForumController
func NewForumController(forumService services.ForumService, userRepo services.UserDirectory) *ForumController {
	return &ForumController{
		forumService: forumService,
		userRepo:     userRepo,
	}
}

func (c *ForumController) requester(ctx *gin.Context) (*models.User, bool) {
	userID, _, ok := requireIdentity(ctx)
	if !ok {
		return nil, false
	}
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return user, true
}

// CreatePost starts a discussion thread
// @Summary Create a forum post
// @Description Starts a thread in the requester's department forum
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateForumPostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.ForumPostResponse} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	user, ok := c.requester(ctx)
	if !ok {
		return
	}

	var req dto.CreateForumPostRequest
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := c.forumService.CreatePost(ctx, user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// ListPosts returns the threads visible to the requester
// @Summary List forum posts
// @Description Returns the requester's department threads, most recently active first
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ForumPostResponse} "Posts"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/posts [get]
func (c *ForumController) ListPosts(ctx *gin.Context) {
	user, ok := c.requester(ctx)
	if !ok {
		return
	}

	posts, err := c.forumService.ListPosts(ctx, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPost returns a single thread
// @Summary Get a forum post
// @Description Returns one thread with its replies and vote score
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.ForumPostResponse} "Post"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/posts/{id} [get]
func (c *ForumController) GetPost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	post, err := c.forumService.GetPost(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// AddReply appends a reply to a thread
// @Summary Reply to a forum post
// @Description Appends a reply and bumps the thread's activity timestamp
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateForumReplyRequest true "Reply content"
// @Success 200 {object} dto.APIResponse{data=dto.ForumPostResponse} "Updated post"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/posts/{id}/replies [post]
func (c *ForumController) AddReply(ctx *gin.Context) {
	userID, _, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateForumReplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := c.forumService.AddReply(ctx, id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// Vote casts a vote on a thread
// @Summary Vote on a forum post
// @Description Casts or replaces an up/down vote (+1 or -1)
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.VoteRequest true "Vote value"
// @Success 200 {object} dto.APIResponse{data=dto.ForumPostResponse} "Updated post"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/posts/{id}/vote [post]
func (c *ForumController) Vote(ctx *gin.Context) {
	userID, _, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := c.forumService.Vote(ctx, id, userID, req.Value)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// Resolve marks a thread as answered
// @Summary Resolve a forum post
// @Description Marks a thread resolved. Staff or the thread's author.
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Post resolved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/posts/{id}/resolve [put]
func (c *ForumController) Resolve(ctx *gin.Context) {
	user, ok := c.requester(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.forumService.SetResolved(ctx, user, id, true); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Post marked as resolved"}))
}

// GetStats aggregates forum activity for the requester
// @Summary Forum statistics
// @Description Aggregates totals, resolution counts, a category histogram and recent threads
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ForumStatsResponse} "Statistics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/stats [get]
func (c *ForumController) GetStats(ctx *gin.Context) {
	user, ok := c.requester(ctx)
	if !ok {
		return
	}

	stats, err := c.forumService.ComputeStats(ctx, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
