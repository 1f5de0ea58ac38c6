package middleware

import (
	"math"
	"net/http"
	"strconv"

	"weeskitten/internal/ratelimit"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

// Throttle limits requests per client IP. A nil throttle lets everything through.
func Throttle(t *ratelimit.Throttle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if t == nil {
			c.Next()
			return
		}
		key := c.ClientIP()
		if !t.Allow(key) {
			wait := int(math.Ceil(t.RetryAfter(key).Seconds()))
			if wait < 1 {
				wait = 1
			}
			c.Header("Retry-After", strconv.Itoa(wait))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Error(http.StatusTooManyRequests, "Too many requests. Please try again later."))
			return
		}
		c.Next()
	}
}
