package csrf

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval is how often expired tokens are dropped from memory.
const DefaultSweepInterval = 10 * time.Minute

type entry struct {
	token     string
	expiresAt time.Time
}

type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]entry)}
}

func (s *MemoryStore) Save(_ context.Context, adminID uint, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key(adminID, token)] = entry{token: token, expiresAt: expiresAt}
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, adminID uint, token string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[key(adminID, token)]
	if !ok || !equal(e.token, token) {
		return time.Time{}, false, nil
	}
	return e.expiresAt, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, adminID uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, key(adminID, token))
	return nil
}

func (s *MemoryStore) Cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.tokens {
		if now.After(e.expiresAt) {
			delete(s.tokens, k)
		}
	}
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// StartJanitor sweeps expired tokens every interval until ctx is cancelled.
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
