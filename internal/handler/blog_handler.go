package handler

import (
	"net/http"

	"weeskitten/internal/apperror"
	"weeskitten/internal/middleware"
	"weeskitten/internal/service"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService service.BlogService
}

func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) RegisterRoutes(router *gin.RouterGroup) {
	blog := router.Group("/blog")
	{
		blog.GET("", h.List)
		blog.GET("/:slug", h.Get)
		blog.POST("", middleware.RequireAdmin(), h.Create)
		blog.PUT("/:slug", middleware.RequireAdmin(), h.Update)
		blog.DELETE("/:slug", middleware.RequireAdmin(), h.Delete)
	}
}

// List returns blog posts, newest first
// @Summary      List blog posts
// @Description  Only published posts unless unpublished=true is sent with an admin token.
// @Tags         blog
// @Produce      json
// @Param        unpublished  query     bool  false  "Include drafts (admin)"
// @Success      200          {object}  response.Response{data=[]model.BlogPost}
// @Failure      401          {object}  response.Response
// @Router       /api/blog [get]
func (h *BlogHandler) List(c *gin.Context) {
	includeDrafts := c.Query("unpublished") == "true"
	if includeDrafts {
		if _, err := middleware.Admin(c); err != nil {
			writeError(c, err)
			return
		}
	}

	posts, err := h.blogService.List(c.Request.Context(), includeDrafts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, posts))
}

// Get returns one post by slug
// @Summary      Get blog post
// @Description  Drafts are only visible to admins.
// @Tags         blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  response.Response{data=model.BlogPost}
// @Failure      404   {object}  response.Response
// @Router       /api/blog/{slug} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.blogService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !post.Published {
		if _, err := middleware.Admin(c); err != nil {
			writeError(c, apperror.NotFound("Blog post not found"))
			return
		}
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, post))
}

// Create publishes or drafts a post
// @Summary      Create blog post
// @Description  The slug is derived from the title when empty.
// @Tags         blog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BlogPostRequest  true  "Post"
// @Success      201      {object}  response.Response{data=model.BlogPost}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/blog [post]
func (h *BlogHandler) Create(c *gin.Context) {
	var req service.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	post, err := h.blogService.Create(c.Request.Context(), middleware.CurrentAdmin(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, post))
}

// Update edits a post
// @Summary      Update blog post
// @Tags         blog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slug     path      string                   true  "Current slug"
// @Param        payload  body      service.BlogPostRequest  true  "Post"
// @Success      200      {object}  response.Response{data=model.BlogPost}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/blog/{slug} [put]
func (h *BlogHandler) Update(c *gin.Context) {
	var req service.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	post, err := h.blogService.Update(c.Request.Context(), middleware.CurrentAdmin(c), c.Param("slug"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, post))
}

// Delete removes a post
// @Summary      Delete blog post
// @Tags         blog
// @Security     BearerAuth
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /api/blog/{slug} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blogService.Delete(c.Request.Context(), middleware.CurrentAdmin(c), c.Param("slug")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Blog post deleted"))
}
