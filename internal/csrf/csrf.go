// Package csrf issues per-admin tokens that guard sensitive admin writes.
package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"weeskitten/internal/apperror"
)

const (
	// HeaderName carries the token on protected requests.
	HeaderName = "X-CSRF-Token"

	DefaultTTL = time.Hour
)

// Store persists issued tokens until they expire.
type Store interface {
	Save(ctx context.Context, adminID uint, token string, expiresAt time.Time) error
	// Lookup returns the expiry of token for adminID, or ok=false if unknown.
	Lookup(ctx context.Context, adminID uint, token string) (expiresAt time.Time, ok bool, err error)
	Delete(ctx context.Context, adminID uint, token string) error
}

type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Generate issues a new 32 byte hex token for adminID.
func (m *Manager) Generate(ctx context.Context, adminID uint) (string, time.Time, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, apperror.Internal("Failed to generate CSRF token", err)
	}
	token := hex.EncodeToString(buf)
	expiresAt := m.now().Add(m.ttl)

	if err := m.store.Save(ctx, adminID, token, expiresAt); err != nil {
		return "", time.Time{}, apperror.Internal("Failed to generate CSRF token", fmt.Errorf("save csrf token: %w", err))
	}
	return token, expiresAt, nil
}

// Verify accepts a token issued to adminID that has not expired. Tokens may be reused until expiry.
func (m *Manager) Verify(ctx context.Context, adminID uint, token string) error {
	if token == "" {
		return apperror.Forbidden("Invalid CSRF token")
	}

	expiresAt, ok, err := m.store.Lookup(ctx, adminID, token)
	if err != nil {
		return apperror.Internal("Failed to verify CSRF token", fmt.Errorf("lookup csrf token: %w", err))
	}
	if !ok {
		return apperror.Forbidden("Invalid CSRF token")
	}
	if m.now().After(expiresAt) {
		_ = m.store.Delete(ctx, adminID, token)
		return apperror.Forbidden("Invalid CSRF token")
	}
	return nil
}

func key(adminID uint, token string) string {
	return fmt.Sprintf("%d:%s", adminID, token)
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
