package handler

import (
	"net/http"

	"sankofa/internal/usecase/assistant"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	service *assistant.Service
}

func NewAssistantHandler(service *assistant.Service) *AssistantHandler {
	return &AssistantHandler{service: service}
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assistant/chat", h.Chat)
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req assistant.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Chat(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reply generated", resp)
}
