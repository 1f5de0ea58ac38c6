package handler

import (
	"net/http"

	"weeskitten/internal/middleware"
	"weeskitten/internal/service"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

type VolunteerHandler struct {
	volunteerService service.VolunteerService
}

func NewVolunteerHandler(volunteerService service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteerService: volunteerService}
}

func (h *VolunteerHandler) RegisterRoutes(router *gin.RouterGroup) {
	volunteers := router.Group("/volunteers")
	{
		volunteers.GET("", h.List)
		volunteers.POST("", middleware.RequireAdmin(), h.Create)
		volunteers.PUT("/:id", middleware.RequireAdmin(), h.Update)
		volunteers.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}

// @Summary      List volunteers
// @Tags         volunteers
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Volunteer}
// @Router       /api/volunteers [get]
func (h *VolunteerHandler) List(c *gin.Context) {
	volunteers, err := h.volunteerService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, volunteers))
}

// @Summary      Create volunteer
// @Tags         volunteers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.VolunteerRequest  true  "Volunteer"
// @Success      201      {object}  response.Response{data=model.Volunteer}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/volunteers [post]
func (h *VolunteerHandler) Create(c *gin.Context) {
	var req service.VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	v, err := h.volunteerService.Create(c.Request.Context(), middleware.CurrentAdmin(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, v))
}

// @Summary      Update volunteer
// @Tags         volunteers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Volunteer ID"
// @Param        payload  body      service.VolunteerRequest  true  "Volunteer"
// @Success      200      {object}  response.Response{data=model.Volunteer}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/volunteers/{id} [put]
func (h *VolunteerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	v, err := h.volunteerService.Update(c.Request.Context(), middleware.CurrentAdmin(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, v))
}

// @Summary      Delete volunteer
// @Tags         volunteers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Volunteer ID"
// @Success      200  {object}  response.Response
// @Router       /api/volunteers/{id} [delete]
func (h *VolunteerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.volunteerService.Delete(c.Request.Context(), middleware.CurrentAdmin(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Volunteer deleted"))
}
