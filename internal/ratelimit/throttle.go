package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle is a per-client token bucket used on public write endpoints.
type Throttle struct {
	mu           sync.Mutex
	entries      map[string]*throttleEntry
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type throttleEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type ThrottleOption func(*Throttle)

func WithIdleTTL(d time.Duration) ThrottleOption {
	return func(t *Throttle) { t.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) ThrottleOption {
	return func(t *Throttle) { t.cleanupEvery = d }
}

func NewThrottle(rps float64, burst int, opts ...ThrottleOption) *Throttle {
	t := &Throttle{
		entries:      make(map[string]*throttleEntry),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Allow consumes one token for key.
func (t *Throttle) Allow(key string) bool {
	return t.limiter(key).Allow()
}

// RetryAfter is the wait before the next token for key becomes available.
func (t *Throttle) RetryAfter(key string) time.Duration {
	r := t.limiter(key).Reserve()
	d := r.Delay()
	r.Cancel()
	return d
}

func (t *Throttle) limiter(key string) *rate.Limiter {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if ent, ok := t.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(t.rps, t.burst)
	t.entries[key] = &throttleEntry{lim: lim, lastSeen: now}
	return lim
}

// Cleanup drops clients idle for longer than the idle TTL.
func (t *Throttle) Cleanup() {
	cutoff := time.Now().Add(-t.idleTTL)

	t.mu.Lock()
	defer t.mu.Unlock()

	for k, ent := range t.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(t.entries, k)
		}
	}
}

func (t *Throttle) StartJanitor(ctx context.Context) {
	if t.cleanupEvery <= 0 {
		return
	}

	tk := time.NewTicker(t.cleanupEvery)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				t.Cleanup()
			}
		}
	}()
}
