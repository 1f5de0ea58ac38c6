package handler

import (
	"log"
	"net/http"
	"strconv"

	"weeskitten/internal/apperror"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError answers with the public message of err. Server-side failures are logged with their cause.
func writeError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, response.Error(status, apperror.PublicMessage(err)))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
}

// parseID reads the :id path parameter. It writes a 400 and returns false when it is not a positive integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// passThrough stands in for an optional middleware.
func passThrough(h gin.HandlerFunc) gin.HandlerFunc {
	if h != nil {
		return h
	}
	return func(c *gin.Context) { c.Next() }
}
