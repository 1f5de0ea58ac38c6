package middleware

import (
	"weeskitten/internal/csrf"

	"github.com/gin-gonic/gin"
)

// RequireCSRF checks the X-CSRF-Token header against the tokens issued to the current admin.
// It must run after RequireAdmin.
func RequireCSRF(manager *csrf.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := Admin(c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := manager.Verify(c.Request.Context(), admin.ID, c.GetHeader(csrf.HeaderName)); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
