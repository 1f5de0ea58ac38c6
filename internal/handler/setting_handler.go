package handler

import (
	"net/http"

	"weeskitten/internal/csrf"
	"weeskitten/internal/middleware"
	"weeskitten/internal/service"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	settingService service.SettingService
	csrf           *csrf.Manager
}

func NewSettingHandler(settingService service.SettingService, csrfManager *csrf.Manager) *SettingHandler {
	return &SettingHandler{settingService: settingService, csrf: csrfManager}
}

func (h *SettingHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("", h.Public)
		settings.GET("/admin", middleware.RequireAdmin(), h.All)
		settings.PUT("", middleware.RequireAdmin(), middleware.RequireCSRF(h.csrf), h.Update)
	}
}

// Public returns the site settings without secrets
// @Summary      Public site settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]string}
// @Router       /api/settings [get]
func (h *SettingHandler) Public(c *gin.Context) {
	settings, err := h.settingService.Public(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// All returns every setting including secrets
// @Summary      All site settings
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]string}
// @Failure      401  {object}  response.Response
// @Router       /api/settings/admin [get]
func (h *SettingHandler) All(c *gin.Context) {
	settings, err := h.settingService.All(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// Update stores one setting
// @Summary      Update site setting
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header    string                        true  "CSRF token from /api/auth/csrf"
// @Param        payload       body      service.UpdateSettingRequest  true  "Setting"
// @Success      200           {object}  response.Response{data=model.SiteSetting}
// @Failure      400           {object}  response.Response
// @Failure      401           {object}  response.Response
// @Failure      403           {object}  response.Response
// @Router       /api/settings [put]
func (h *SettingHandler) Update(c *gin.Context) {
	var req service.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	setting, err := h.settingService.Update(c.Request.Context(), middleware.CurrentAdmin(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, setting))
}
