package handler

import (
	"net/http"

	"sankofa/internal/middleware"
	"sankofa/internal/usecase/healthdata"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HealthDataHandler struct {
	service *healthdata.Service
}

func NewHealthDataHandler(service *healthdata.Service) *HealthDataHandler {
	return &HealthDataHandler{service: service}
}

func (h *HealthDataHandler) RegisterRoutes(router *gin.RouterGroup) {
	reporters := middleware.RoleMiddleware(middleware.RoleAdmin, middleware.RoleVolunteer)

	records := router.Group("/health-data")
	{
		records.GET("", h.ListRecords)
		records.GET("/summary", h.GetSummary)
		records.GET("/:id", h.GetRecord)

		records.POST("", reporters, h.CreateRecord)
		records.PUT("/:id", reporters, h.UpdateRecord)
		records.DELETE("/:id", middleware.AdminOnly(), h.DeleteRecord)
	}
}

func (h *HealthDataHandler) CreateRecord(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req healthdata.CreateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Health record created successfully", resp)
}

func (h *HealthDataHandler) ListRecords(c *gin.Context) {
	var req healthdata.ListRecordsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Health records retrieved successfully", resp)
}

func (h *HealthDataHandler) GetRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Health record retrieved successfully", resp)
}

func (h *HealthDataHandler) UpdateRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req healthdata.UpdateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Health record updated successfully", resp)
}

func (h *HealthDataHandler) DeleteRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Health record deleted successfully", nil)
}

func (h *HealthDataHandler) GetSummary(c *gin.Context) {
	var req healthdata.ListRecordsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Health summary retrieved successfully", resp)
}
