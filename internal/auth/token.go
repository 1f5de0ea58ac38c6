// Package auth issues and verifies the bearer tokens used by the admin API.
package auth

import (
	"errors"
	"strconv"
	"time"

	"weeskitten/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an admin session token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Identity is the authenticated admin behind a token.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type claims struct {
	jwt.RegisteredClaims
	AdminID  uint   `json:"id"`
	Username string `json:"username"`
}

// TokenManager signs and checks HS256 tokens with a shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue returns a signed token for id and the instant it expires.
func (m *TokenManager) Issue(id Identity) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		AdminID:  id.ID,
		Username: id.Username,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, apperror.Internal("Failed to generate token", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry. Every failure is an unauthorized error.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, apperror.Unauthorized("Unauthorized")
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, mapJWTError(err)
	}
	if parsed.AdminID == 0 || parsed.Username == "" {
		return Identity{}, apperror.Unauthorized("Invalid token")
	}

	return Identity{ID: parsed.AdminID, Username: parsed.Username}, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperror.Wrap(apperror.KindUnauthorized, "Token expired", err)
	}
	return apperror.Wrap(apperror.KindUnauthorized, "Invalid token", err)
}
