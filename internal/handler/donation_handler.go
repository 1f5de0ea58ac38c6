package handler

import (
	"net/http"

	"weeskitten/internal/middleware"
	"weeskitten/internal/service"
	"weeskitten/pkg/pagination"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationService service.DonationService
	publicLimit     gin.HandlerFunc
}

func NewDonationHandler(donationService service.DonationService, publicLimit gin.HandlerFunc) *DonationHandler {
	return &DonationHandler{donationService: donationService, publicLimit: passThrough(publicLimit)}
}

func (h *DonationHandler) RegisterRoutes(router *gin.RouterGroup) {
	donations := router.Group("/donations")
	{
		donations.POST("", h.publicLimit, h.Create)
		donations.POST("/webhook", h.Webhook)
		donations.GET("", middleware.RequireAdmin(), h.List)
	}
}

// Create starts a donation and returns the checkout URL
// @Summary      Start donation
// @Description  Creates a pending donation and an iDEAL payment. The client redirects to checkout_url.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDonationRequest  true  "Donation"
// @Success      201      {object}  response.Response{data=service.CreateDonationResponse}
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	var req service.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}
	res, err := h.donationService.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// Webhook receives payment status notifications
// @Summary      Payment webhook
// @Description  Called by the payment provider with the payment id as form field id. The status itself is fetched from the provider.
// @Tags         donations
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        id   formData  string  true  "Payment ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/donations/webhook [post]
func (h *DonationHandler) Webhook(c *gin.Context) {
	paymentID := c.PostForm("id")
	if paymentID == "" && c.ContentType() == "application/json" {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			paymentID = body.ID
		}
	}

	if err := h.donationService.HandleWebhook(c.Request.Context(), paymentID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "OK"))
}

// List returns donations, newest first
// @Summary      List donations
// @Tags         donations
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Page}
// @Failure      401    {object}  response.Response
// @Router       /api/donations [get]
func (h *DonationHandler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	donations, total, err := h.donationService.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, donations, total, p))
}
