package handler

import (
	"context"
	"net/http"

	"sankofa/internal/usecase/message"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	service *message.Service
}

func NewMessageHandler(service *message.Service) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) RegisterRoutes(router *gin.RouterGroup) {
	messages := router.Group("/messages")
	{
		messages.POST("", h.SendMessage)
		messages.GET("/inbox", h.Inbox)
		messages.GET("/sent", h.Sent)
		messages.GET("/unread-count", h.UnreadCount)
		messages.GET("/:id", h.GetMessage)
		messages.PUT("/:id/read", h.MarkRead)
		messages.DELETE("/:id", h.DeleteMessage)
	}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req message.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Send(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Message sent successfully", resp)
}

func (h *MessageHandler) Inbox(c *gin.Context) {
	h.listBox(c, h.service.Inbox)
}

func (h *MessageHandler) Sent(c *gin.Context) {
	h.listBox(c, h.service.Sent)
}

func (h *MessageHandler) listBox(c *gin.Context, list func(ctx context.Context, userID uuid.UUID, req *message.ListMessagesRequest) (*utils.ListResponse, error)) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req message.ListMessagesRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := list(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Messages retrieved successfully", resp)
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	resp, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Unread count retrieved successfully", resp)
}

func (h *MessageHandler) GetMessage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message retrieved successfully", resp)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message marked as read", nil)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message deleted successfully", nil)
}
