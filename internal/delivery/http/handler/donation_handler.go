package handler

import (
	"io"
	"net/http"

	"sankofa/internal/middleware"
	"sankofa/internal/usecase/donation"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
)

const paystackSignatureHeader = "x-paystack-signature"

type DonationHandler struct {
	service *donation.Service
}

func NewDonationHandler(service *donation.Service) *DonationHandler {
	return &DonationHandler{service: service}
}

// RegisterPublicRoutes exposes the gateway callback, which authenticates by
// signature instead of a bearer token.
func (h *DonationHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/donations/webhook", h.Webhook)
}

func (h *DonationHandler) RegisterRoutes(router *gin.RouterGroup) {
	donations := router.Group("/donations")
	{
		donations.POST("", middleware.DonorOnly(), h.CreateDonation)
		donations.GET("/mine", middleware.DonorOnly(), h.ListMyDonations)
		donations.POST("/verify/:reference", middleware.RoleMiddleware(middleware.RoleDonor, middleware.RoleAdmin), h.VerifyPayment)

		donations.GET("", middleware.AdminOnly(), h.ListDonations)
		donations.GET("/stats", middleware.AdminOnly(), h.GetStats)

		donations.GET("/:id", h.GetDonation)
	}
}

func (h *DonationHandler) CreateDonation(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req donation.CreateDonationRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = utils.SanitizeEmail(req.Email)

	resp, err := h.service.Create(c.Request.Context(), userID, middleware.CurrentEmail(c), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Donation created successfully", resp)
}

func (h *DonationHandler) ListMyDonations(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req donation.ListDonationsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Donations retrieved successfully", resp)
}

func (h *DonationHandler) ListDonations(c *gin.Context) {
	var req donation.ListDonationsRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Donations retrieved successfully", resp)
}

func (h *DonationHandler) GetDonation(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "Donation retrieved successfully", resp)
}

func (h *DonationHandler) VerifyPayment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	resp, err := h.service.VerifyPayment(c.Request.Context(), c.Param("reference"), userID, roleOf(c))
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment status checked", resp)
}

func (h *DonationHandler) GetStats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Donation statistics retrieved successfully", resp)
}

func (h *DonationHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, errInvalidBody.WithErr(err))
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), body, c.GetHeader(paystackSignatureHeader)); err != nil {
		fail(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Webhook processed", nil)
}
