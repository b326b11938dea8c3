package handler

import (
	"net/http"

	"sankofa/internal/ingestion"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

type IngestionHandler struct {
	processor *ingestion.Processor
}

func NewIngestionHandler(processor *ingestion.Processor) *IngestionHandler {
	return &IngestionHandler{processor: processor}
}

func (h *IngestionHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/ingestion/metrics", h.GetMetrics)
}

func (h *IngestionHandler) GetMetrics(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Ingestion metrics retrieved successfully", h.processor.GetMetrics())
}
