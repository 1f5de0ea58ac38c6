package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"weeskitten/internal/apperror"
	"weeskitten/internal/middleware"
	"weeskitten/internal/ratelimit"
	"weeskitten/internal/service"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	now         func() time.Time
}

// NewAuthHandler sets up the routing dependencies for admin authentication
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, now: time.Now}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/auth")
	{
		group.POST("/login", h.Login)
		group.GET("/me", middleware.RequireAdmin(), h.Me)
		group.GET("/csrf", middleware.RequireAdmin(), h.CSRF)
	}
}

// Login checks admin credentials
// @Summary      Admin login
// @Description  Verifies username and password and returns a bearer token valid for 7 days plus a CSRF token. Limited to 5 attempts per username per minute.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=service.LoginResponse}
// @Header       200,429  {integer} X-RateLimit-Remaining "Attempts left in the current window"
// @Header       200,429  {string}  X-RateLimit-Reset     "End of the current window (RFC3339)"
// @Header       429      {integer} Retry-After           "Seconds until the window resets"
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	res, limit, err := h.authService.Login(c.Request.Context(), req)
	h.setLimitHeaders(c, limit, err)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

func (h *AuthHandler) setLimitHeaders(c *gin.Context, limit ratelimit.Result, err error) {
	if limit.ResetTime.IsZero() {
		return
	}
	c.Header("X-RateLimit-Remaining", strconv.Itoa(limit.Remaining))
	c.Header("X-RateLimit-Reset", limit.ResetTime.UTC().Format(time.RFC3339))

	if errors.Is(err, apperror.ErrRateLimited) {
		wait := int(math.Ceil(limit.ResetTime.Sub(h.now()).Seconds()))
		if wait < 1 {
			wait = 1
		}
		c.Header("Retry-After", strconv.Itoa(wait))
	}
}

// Me returns the logged-in admin
// @Summary      Current admin
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.AdminResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	me, err := h.authService.Me(c.Request.Context(), middleware.CurrentAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, me))
}

// CSRF issues a fresh CSRF token for the logged-in admin
// @Summary      Issue CSRF token
// @Description  Tokens are valid for one hour and must be sent as X-CSRF-Token on settings changes.
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.CSRFResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/csrf [get]
func (h *AuthHandler) CSRF(c *gin.Context) {
	res, err := h.authService.IssueCSRF(c.Request.Context(), middleware.CurrentAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
