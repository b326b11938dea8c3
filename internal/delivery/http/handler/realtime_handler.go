package handler

import (
	"net/http"
	"slices"

	"sankofa/internal/logger"
	"sankofa/internal/middleware"
	"sankofa/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type RealtimeHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewRealtimeHandler accepts websocket upgrades from the given origins; "*"
// or an empty list allows any origin.
func NewRealtimeHandler(hub *realtime.Hub, allowedOrigins []string) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (h *RealtimeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", h.Connect)
}

func (h *RealtimeHandler) Connect(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the error response
		logger.Warn("Websocket upgrade failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	h.hub.Attach(conn, userID, middleware.IsStaff(roleOf(c)))
}
