package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval is how often the janitor drops expired windows.
const DefaultSweepInterval = 5 * time.Minute

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps windows in process memory. Counters are lost on restart
// and not shared between instances; use RedisStore for that.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window)}
}

func (s *MemoryStore) Hit(_ context.Context, key string, p Policy, now time.Time) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(p.Window)}
		s.windows[key] = w
		return Result{Allowed: true, Remaining: p.MaxAttempts - 1, ResetTime: w.resetAt}, nil
	}

	if w.count >= p.MaxAttempts {
		return Result{Allowed: false, Remaining: 0, ResetTime: w.resetAt}, nil
	}

	w.count++
	return Result{Allowed: true, Remaining: p.MaxAttempts - w.count, ResetTime: w.resetAt}, nil
}

// Cleanup removes every window that ended before now.
func (s *MemoryStore) Cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, k)
		}
	}
}

// Len reports the number of tracked identifiers.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// StartJanitor sweeps expired windows every interval until ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = DefaultSweepInterval
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				s.Cleanup(now)
			}
		}
	}()
}
