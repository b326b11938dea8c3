package handler

import (
	"net/http"

	"sankofa/internal/middleware"
	"sankofa/internal/usecase/collection"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	service *collection.Service
}

func NewCollectionHandler(service *collection.Service) *CollectionHandler {
	return &CollectionHandler{service: service}
}

func (h *CollectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	collections := router.Group("/collections")
	{
		// Collector routes
		collections.POST("", middleware.CollectorOnly(), h.CreateCollection)
		collections.GET("/mine", middleware.CollectorOnly(), h.ListMyCollections)

		// Staff routes
		collections.GET("", middleware.StaffOnly(), h.ListCollections)
		collections.GET("/stats", middleware.StaffOnly(), h.GetStatistics)
		collections.PUT("/:id/verify", middleware.StaffOnly(), h.VerifyCollection)

		collections.GET("/:id", h.GetCollection)
		collections.DELETE("/:id", h.DeleteCollection)
	}
}

func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req collection.CreateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Collection recorded successfully", resp)
}

func (h *CollectionHandler) ListMyCollections(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req collection.ListCollectionsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Collections retrieved successfully", resp)
}

func (h *CollectionHandler) ListCollections(c *gin.Context) {
	var req collection.ListCollectionsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Collections retrieved successfully", resp)
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "Collection retrieved successfully", resp)
}

func (h *CollectionHandler) VerifyCollection(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Collection verified successfully", resp)
}

func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID, roleOf(c)); err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Collection deleted successfully", nil)
}

func (h *CollectionHandler) GetStatistics(c *gin.Context) {
	resp, err := h.service.Statistics(c.Request.Context(), c.Query("hub_id"))
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", resp)
}
