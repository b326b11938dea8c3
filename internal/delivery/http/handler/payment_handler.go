package handler

import (
	"net/http"

	"sankofa/internal/middleware"
	"sankofa/internal/usecase/payment"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service *payment.Service
}

func NewPaymentHandler(service *payment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/payments")
	{
		payments.GET("/mine", h.ListMyPayments)
		payments.GET("/:id", h.GetPayment)

		payments.POST("", middleware.StaffOnly(), h.CreatePayment)
		payments.GET("", middleware.StaffOnly(), h.ListPayments)
		payments.PUT("/:id/status", middleware.StaffOnly(), h.UpdateStatus)
	}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req payment.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Payment created successfully", resp)
}

func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req payment.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment status updated successfully", resp)
}

func (h *PaymentHandler) ListMyPayments(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req payment.ListPaymentsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payments retrieved successfully", resp)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var req payment.ListPaymentsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payments retrieved successfully", resp)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "Payment retrieved successfully", resp)
}
