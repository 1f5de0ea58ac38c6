package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryStoreLoginWindow(t *testing.T) {
	clk := &clock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	l := NewLimiter(NewMemoryStore()).WithClock(clk.now)
	ctx := context.Background()
	p := Policy{MaxAttempts: 5, Window: time.Minute}

	for i := 1; i <= 5; i++ {
		res := l.Check(ctx, "admin", p)
		require.True(t, res.Allowed, "attempt %d", i)
		assert.Equal(t, 5-i, res.Remaining)
		clk.advance(time.Second)
	}

	denied := l.Check(ctx, "admin", p)
	assert.False(t, denied.Allowed)
	assert.Equal(t, 0, denied.Remaining)
	assert.Equal(t, time.Date(2026, 1, 10, 9, 1, 0, 0, time.UTC), denied.ResetTime)

	// other identifiers are independent
	assert.True(t, l.Check(ctx, "someone-else", p).Allowed)

	clk.advance(time.Minute)
	res := l.Check(ctx, "admin", p)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestMemoryStoreDeniedAttemptsAreNotCounted(t *testing.T) {
	clk := &clock{t: time.Unix(1_700_000_000, 0)}
	s := NewMemoryStore()
	l := NewLimiter(s).WithClock(clk.now)
	p := Policy{MaxAttempts: 2, Window: time.Minute}

	l.Check(context.Background(), "k", p)
	l.Check(context.Background(), "k", p)
	for i := 0; i < 10; i++ {
		assert.False(t, l.Check(context.Background(), "k", p).Allowed)
	}
	assert.Equal(t, 2, s.windows["k"].count)
}

func TestMemoryStoreCleanup(t *testing.T) {
	s := NewMemoryStore()
	now := time.Unix(1_700_000_000, 0)
	p := Policy{MaxAttempts: 5, Window: time.Minute}

	_, _ = s.Hit(context.Background(), "old", p, now)
	_, _ = s.Hit(context.Background(), "fresh", p, now.Add(50*time.Second))
	require.Equal(t, 2, s.Len())

	s.Cleanup(now.Add(61 * time.Second))
	assert.Equal(t, 1, s.Len())
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, Policy, time.Time) (Result, error) {
	return Result{}, errors.New("connection refused")
}

func TestLimiterFailsOpen(t *testing.T) {
	l := NewLimiter(failingStore{})

	res := l.Check(context.Background(), "admin", LoginPolicy)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}
