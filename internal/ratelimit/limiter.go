// Package ratelimit counts attempts per identifier in fixed windows.
//
// The Limiter never returns an error: when the backing store fails the attempt
// is logged and allowed, so a Redis outage cannot lock every admin out.
package ratelimit

import (
	"context"
	"log"
	"time"
)

// Policy bounds the number of attempts inside one window.
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

// LoginPolicy is the default policy for admin login attempts.
var LoginPolicy = Policy{MaxAttempts: 5, Window: time.Minute}

// Result is the outcome of one attempt.
type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// Store records one attempt for key and reports the resulting window state.
// Implementations must apply the same semantics: a new window starts with
// count 1, attempts beyond MaxAttempts are denied without being counted.
type Store interface {
	Hit(ctx context.Context, key string, p Policy, now time.Time) (Result, error)
}

type Limiter struct {
	store Store
	now   func() time.Time
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Check records an attempt for identifier under p.
func (l *Limiter) Check(ctx context.Context, identifier string, p Policy) Result {
	if p.MaxAttempts <= 0 {
		p = LoginPolicy
	}
	now := l.now()

	res, err := l.store.Hit(ctx, identifier, p, now)
	if err != nil {
		log.Printf("ratelimit: store error for %q, allowing attempt: %v", identifier, err)
		return Result{Allowed: true, Remaining: p.MaxAttempts - 1, ResetTime: now.Add(p.Window)}
	}
	return res
}
