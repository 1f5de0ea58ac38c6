package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", Unauthorized("Unauthorized"), http.StatusUnauthorized},
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"rate limited", New(KindRateLimited, "slow down"), http.StatusTooManyRequests},
		{"forbidden", Forbidden("csrf"), http.StatusForbidden},
		{"internal", Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("service: %w", NotFound("missing")), http.StatusNotFound},
		{"foreign", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("get request: %w", NotFound("Adoption request not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := Internal("Failed to update adoption request", errors.New("pq: connection refused"))

	assert.Equal(t, "Failed to update adoption request", PublicMessage(err))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("pq: connection refused")))
	assert.ErrorContains(t, errors.Unwrap(err), "connection refused")
}
