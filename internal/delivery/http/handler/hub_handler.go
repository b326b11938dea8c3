package handler

import (
	"net/http"

	"sankofa/internal/middleware"
	"sankofa/internal/usecase/hub"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HubHandler struct {
	service *hub.Service
}

func NewHubHandler(service *hub.Service) *HubHandler {
	return &HubHandler{service: service}
}

func (h *HubHandler) RegisterRoutes(router *gin.RouterGroup) {
	hubs := router.Group("/hubs")
	{
		hubs.GET("", h.ListHubs)
		hubs.GET("/:id", h.GetHub)
		hubs.GET("/:id/stats", h.GetStats)

		hubs.POST("", middleware.AdminOnly(), h.CreateHub)
		hubs.PUT("/:id", middleware.StaffOnly(), h.UpdateHub)
		hubs.DELETE("/:id", middleware.AdminOnly(), h.DeleteHub)
		hubs.POST("/:id/empty", middleware.StaffOnly(), h.EmptyHub)
	}
}

func (h *HubHandler) ListHubs(c *gin.Context) {
	var req hub.ListHubsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hubs retrieved successfully", resp)
}

func (h *HubHandler) GetHub(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hub retrieved successfully", resp)
}

func (h *HubHandler) GetStats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hub statistics retrieved successfully", resp)
}

func (h *HubHandler) CreateHub(c *gin.Context) {
	var req hub.CreateHubRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	req.Region = utils.SanitizeString(req.Region)
	req.Location = utils.SanitizeString(req.Location)

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Hub created successfully", resp)
}

func (h *HubHandler) UpdateHub(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req hub.UpdateHubRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hub updated successfully", resp)
}

func (h *HubHandler) DeleteHub(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hub deleted successfully", nil)
}

func (h *HubHandler) EmptyHub(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Empty(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hub emptied successfully", resp)
}
