package handler

import (
	"net/http"

	"sankofa/internal/middleware"
	"sankofa/internal/usecase/volunteer"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

type VolunteerHandler struct {
	service *volunteer.Service
}

func NewVolunteerHandler(service *volunteer.Service) *VolunteerHandler {
	return &VolunteerHandler{service: service}
}

func (h *VolunteerHandler) RegisterRoutes(router *gin.RouterGroup) {
	volunteers := router.Group("/volunteers")
	{
		volunteers.POST("", middleware.RoleMiddleware(middleware.RoleVolunteer), h.Apply)
		volunteers.GET("/me", h.GetMine)
		volunteers.GET("/:id", h.GetVolunteer)
		volunteers.POST("/:id/hours", h.LogHours)

		volunteers.GET("", middleware.AdminOnly(), h.ListVolunteers)
		volunteers.PUT("/:id/status", middleware.AdminOnly(), h.Review)
	}
}

func (h *VolunteerHandler) Apply(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req volunteer.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Application submitted successfully", resp)
}

func (h *VolunteerHandler) GetMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	resp, err := h.service.Mine(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Application retrieved successfully", resp)
}

func (h *VolunteerHandler) GetVolunteer(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id, userID, roleOf(c))
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Application retrieved successfully", resp)
}

func (h *VolunteerHandler) ListVolunteers(c *gin.Context) {
	var req volunteer.ListVolunteersRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Volunteers retrieved successfully", resp)
}

func (h *VolunteerHandler) Review(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req volunteer.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Review(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Application reviewed successfully", resp)
}

func (h *VolunteerHandler) LogHours(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req volunteer.LogHoursRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.LogHours(c.Request.Context(), id, userID, roleOf(c), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hours logged successfully", resp)
}
