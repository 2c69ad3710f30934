package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/app/services"
	"github.com/emre/campushub/internal/middleware"
)

// ChatController handles direct messaging operations
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// SendMessage delivers a direct message to another user
// @Summary Send a message
// @Description Sends a direct message; both participants resolve to the same thread
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Recipient user ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Recipient not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats/{userId}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, _, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	recipientID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	message, err := c.chatService.SendMessage(ctx, userID, recipientID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// GetThread returns the message history with another user
// @Summary Get a chat thread
// @Description Returns the full message history with a user, oldest first
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other participant's user ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse} "Messages"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats/{userId}/messages [get]
func (c *ChatController) GetThread(ctx *gin.Context) {
	userID, _, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	otherID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	messages, err := c.chatService.GetThread(ctx, userID, otherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// ListConversations summarizes the requester's chats
// @Summary List conversations
// @Description Returns one entry per chat with contact info, last message and unread count
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse} "Conversations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	userID, _, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	conversations, err := c.chatService.ListConversations(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations))
}

// MarkRead flags a thread's incoming messages as read
// @Summary Mark a thread read
// @Description Flags every message the other user sent in this thread as read
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other participant's user ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Thread marked read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats/{userId}/read [put]
func (c *ChatController) MarkRead(ctx *gin.Context) {
	userID, _, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	otherID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.chatService.MarkRead(ctx, userID, otherID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Thread marked as read"}))
}
