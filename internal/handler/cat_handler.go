package handler

import (
	"net/http"

	"weeskitten/internal/middleware"
	"weeskitten/internal/repository"
	"weeskitten/internal/service"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatHandler struct {
	catService service.CatService
}

func NewCatHandler(catService service.CatService) *CatHandler {
	return &CatHandler{catService: catService}
}

func (h *CatHandler) RegisterRoutes(router *gin.RouterGroup) {
	cats := router.Group("/cats")
	{
		cats.GET("", h.List)
		cats.GET("/:id", h.Get)
		cats.POST("", middleware.RequireAdmin(), h.Create)
		cats.PUT("/:id", middleware.RequireAdmin(), h.Update)
		cats.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}

// List returns cats, newest first
// @Summary      List cats
// @Description  Adopted cats are hidden unless adopted=true or status=adopted.
// @Tags         cats
// @Produce      json
// @Param        status   query     string  false  "available, reserved or adopted"
// @Param        adopted  query     bool    false  "Include adopted cats"
// @Success      200      {object}  response.Response{data=[]model.Cat}
// @Failure      400      {object}  response.Response
// @Router       /api/cats [get]
func (h *CatHandler) List(c *gin.Context) {
	filter := repository.CatFilter{
		Status:         c.Query("status"),
		IncludeAdopted: c.Query("adopted") == "true",
	}
	cats, err := h.catService.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, cats))
}

// Get returns one cat
// @Summary      Get cat
// @Tags         cats
// @Produce      json
// @Param        id   path      int  true  "Cat ID"
// @Success      200  {object}  response.Response{data=model.Cat}
// @Failure      404  {object}  response.Response
// @Router       /api/cats/{id} [get]
func (h *CatHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cat, err := h.catService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, cat))
}

// Create adds a cat
// @Summary      Create cat
// @Tags         cats
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CatRequest  true  "Cat"
// @Success      201      {object}  response.Response{data=model.Cat}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/cats [post]
func (h *CatHandler) Create(c *gin.Context) {
	var req service.CatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	cat, err := h.catService.Create(c.Request.Context(), middleware.CurrentAdmin(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, cat))
}

// Update replaces a cat's fields
// @Summary      Update cat
// @Tags         cats
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Cat ID"
// @Param        payload  body      service.CatRequest  true  "Cat"
// @Success      200      {object}  response.Response{data=model.Cat}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/cats/{id} [put]
func (h *CatHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.CatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	cat, err := h.catService.Update(c.Request.Context(), middleware.CurrentAdmin(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, cat))
}

// Delete removes a cat together with its adoption requests
// @Summary      Delete cat
// @Tags         cats
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Cat ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/cats/{id} [delete]
func (h *CatHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catService.Delete(c.Request.Context(), middleware.CurrentAdmin(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Cat deleted"))
}
