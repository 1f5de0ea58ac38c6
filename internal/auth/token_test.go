package auth

import (
	"errors"
	"testing"
	"time"

	"weeskitten/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", 0).WithClock(fixedClock(now))

	token, expiresAt, err := m.Issue(Identity{ID: 3, Username: "anna"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), expiresAt)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 3, Username: "anna"}, id)
}

func TestVerifyExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", time.Hour).WithClock(fixedClock(now))

	token, _, err := m.Issue(Identity{ID: 1, Username: "admin"})
	require.NoError(t, err)

	m.WithClock(fixedClock(now.Add(2 * time.Hour)))
	_, err = m.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	assert.Equal(t, "Token expired", err.Error())
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	foreign, _, err := other.Issue(Identity{ID: 1, Username: "admin"})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":       1,
		"username": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "username": "admin"})
	noExpToken, err := noExp.SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong secret": foreign,
		"alg none":     unsigned,
		"missing exp":  noExpToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.True(t, errors.Is(err, apperror.ErrUnauthorized), "got %v", err)
		})
	}
}
