package handler

import (
	"net/http"

	"sankofa/internal/usecase/analytics"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RegisterRoutes expects router to be guarded for staff already.
func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/analytics")
	{
		group.GET("/dashboard", h.Dashboard)
		group.GET("/trend", h.Trend)
		group.GET("/leaderboard", h.Leaderboard)
		group.GET("/hubs", h.Hubs)
	}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	resp, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved successfully", resp)
}

func (h *AnalyticsHandler) Trend(c *gin.Context) {
	var req analytics.TrendRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.Trend(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trend retrieved successfully", resp)
}

func (h *AnalyticsHandler) Leaderboard(c *gin.Context) {
	var req analytics.LeaderboardRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.Leaderboard(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Leaderboard retrieved successfully", resp)
}

func (h *AnalyticsHandler) Hubs(c *gin.Context) {
	resp, err := h.service.Hubs(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hub performance retrieved successfully", resp)
}
