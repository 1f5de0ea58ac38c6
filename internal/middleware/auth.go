package middleware

import (
	"strings"

	"weeskitten/internal/apperror"
	"weeskitten/internal/auth"
	"weeskitten/pkg/response"

	"github.com/gin-gonic/gin"
)

const authResultKey = "auth.result"

// TokenVerifier turns a bearer token into an admin identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type authResult struct {
	identity auth.Identity
	err      error
}

var errMissingAuth = apperror.Unauthorized("Authorization is missing")

// Authenticate verifies the bearer token, if any, and stores the outcome on the context.
// It never aborts; RequireAdmin and Admin decide what a failed check means for a route.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(authResultKey, verify(verifier, c.GetHeader("Authorization")))
		c.Next()
	}
}

func verify(verifier TokenVerifier, header string) authResult {
	if header == "" {
		return authResult{err: errMissingAuth}
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return authResult{err: apperror.Unauthorized("Invalid authorization format. Expected 'Bearer <token>'")}
	}
	id, err := verifier.Verify(parts[1])
	if err != nil {
		return authResult{err: err}
	}
	return authResult{identity: id}
}

// Admin returns the verified identity of the caller or the reason there is none.
func Admin(c *gin.Context) (auth.Identity, error) {
	v, ok := c.Get(authResultKey)
	if !ok {
		return auth.Identity{}, errMissingAuth
	}
	res := v.(authResult)
	return res.identity, res.err
}

// RequireAdmin aborts with 401 unless Authenticate accepted the caller's token.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := Admin(c); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// CurrentAdmin is the identity behind a route guarded by RequireAdmin.
func CurrentAdmin(c *gin.Context) auth.Identity {
	id, _ := Admin(c)
	return id
}

func abortWithError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	c.AbortWithStatusJSON(status, response.Error(status, apperror.PublicMessage(err)))
}
