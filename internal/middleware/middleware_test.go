package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"weeskitten/internal/auth"
	"weeskitten/internal/csrf"
	"weeskitten/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(tokens *auth.TokenManager, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(tokens))
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentAdmin(c).Username})
	})
	r.POST("/admin", handlers...)
	return r
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("secret", 0)
	token, _, err := tokens.Issue(auth.Identity{ID: 1, Username: "beheer"})
	require.NoError(t, err)
	other, _, err := auth.NewTokenManager("other-secret", 0).Issue(auth.Identity{ID: 1, Username: "beheer"})
	require.NoError(t, err)

	r := newEngine(tokens, RequireAdmin())

	tests := []struct {
		name   string
		header string
		status int
		errMsg string
	}{
		{"valid", "Bearer " + token, http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, "Authorization is missing"},
		{"bad format", "Token " + token, http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"},
		{"wrong secret", "Bearer " + other, http.StatusUnauthorized, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, errorBody(t, w))
			} else {
				assert.JSONEq(t, `{"username":"beheer"}`, w.Body.String())
			}
		})
	}
}

func TestRequireCSRF(t *testing.T) {
	tokens := auth.NewTokenManager("secret", 0)
	token, _, err := tokens.Issue(auth.Identity{ID: 3, Username: "beheer"})
	require.NoError(t, err)
	manager := csrf.NewManager(csrf.NewMemoryStore(), 0)
	csrfToken, _, err := manager.Generate(context.Background(), 3)
	require.NoError(t, err)
	foreign, _, err := manager.Generate(context.Background(), 4)
	require.NoError(t, err)

	r := newEngine(tokens, RequireAdmin(), RequireCSRF(manager))

	for name, tc := range map[string]struct {
		csrf   string
		status int
	}{
		"valid":         {csrfToken, http.StatusOK},
		"missing":       {"", http.StatusForbidden},
		"another admin": {foreign, http.StatusForbidden},
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set(csrf.HeaderName, tc.csrf)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestThrottle(t *testing.T) {
	r := gin.New()
	r.POST("/public", Throttle(ratelimit.NewThrottle(0.001, 2)), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/public", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))

	req := httptest.NewRequest(http.MethodPost, "/public", nil)
	req.RemoteAddr = "198.51.100.1:5000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
