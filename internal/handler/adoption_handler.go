package handler

import (
	"net/http"

	"weeskitten/internal/middleware"
	"weeskitten/internal/service"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

type AdoptionHandler struct {
	adoptionService service.AdoptionService
	publicLimit     gin.HandlerFunc
}

// NewAdoptionHandler wires the adoption request endpoints. publicLimit guards the public form and may be nil.
func NewAdoptionHandler(adoptionService service.AdoptionService, publicLimit gin.HandlerFunc) *AdoptionHandler {
	return &AdoptionHandler{adoptionService: adoptionService, publicLimit: passThrough(publicLimit)}
}

func (h *AdoptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/adoption-requests")
	{
		group.POST("", h.publicLimit, h.Create)
		group.GET("", h.List)
		group.GET("/:id", middleware.RequireAdmin(), h.Get)
		group.PUT("/:id", middleware.RequireAdmin(), h.Transition)
		group.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}

// Create submits an adoption request
// @Summary      Submit adoption request
// @Description  Public form. The request starts as pending; the cat must exist.
// @Tags         adoption
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateAdoptionRequest  true  "Adoption form"
// @Success      201      {object}  response.Response{data=model.AdoptionRequest}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /api/adoption-requests [post]
func (h *AdoptionHandler) Create(c *gin.Context) {
	var req service.CreateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	created, err := h.adoptionService.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// List returns adoption requests
// @Summary      List adoption requests
// @Description  With a non-empty ?email the applicant's own requests are returned without authentication. Without it the full list requires an admin token.
// @Tags         adoption
// @Produce      json
// @Param        email   query     string  false  "Applicant email"
// @Param        status  query     string  false  "Filter by status (admin list only)"
// @Success      200     {object}  response.Response{data=[]model.AdoptionRequest}
// @Failure      401     {object}  response.Response
// @Router       /api/adoption-requests [get]
func (h *AdoptionHandler) List(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		requests, err := h.adoptionService.ListByEmail(c.Request.Context(), email)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
		return
	}

	if _, err := middleware.Admin(c); err != nil {
		writeError(c, err)
		return
	}

	// An unknown status matches nothing.
	requests, err := h.adoptionService.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// Get returns one adoption request
// @Summary      Get adoption request
// @Tags         adoption
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Response{data=model.AdoptionRequest}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/adoption-requests/{id} [get]
func (h *AdoptionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, err := h.adoptionService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, req))
}

// Transition changes the status of a request
// @Summary      Update adoption request status
// @Description  approved and completed mark the cat adopted, rejected makes it available again, pending leaves it alone. Request and cat change in one transaction.
// @Tags         adoption
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Request ID"
// @Param        payload  body      service.TransitionRequest  true  "New status"
// @Success      200      {object}  response.Response{data=model.AdoptionRequest}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/adoption-requests/{id} [put]
func (h *AdoptionHandler) Transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	updated, err := h.adoptionService.Transition(c.Request.Context(), middleware.CurrentAdmin(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

// Delete removes a request
// @Summary      Delete adoption request
// @Description  Idempotent: deleting an unknown id also answers 200.
// @Tags         adoption
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/adoption-requests/{id} [delete]
func (h *AdoptionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.adoptionService.Delete(c.Request.Context(), middleware.CurrentAdmin(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Adoption request deleted"))
}
