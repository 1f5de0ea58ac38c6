package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStoreLoginWindow(t *testing.T) {
	store, mr := newRedisStore(t)
	l := NewLimiter(store)
	ctx := context.Background()
	p := Policy{MaxAttempts: 5, Window: time.Minute}

	for i := 1; i <= 5; i++ {
		res := l.Check(ctx, "login:admin", p)
		require.True(t, res.Allowed, "attempt %d", i)
		assert.Equal(t, 5-i, res.Remaining)
	}

	denied := l.Check(ctx, "login:admin", p)
	assert.False(t, denied.Allowed)
	assert.Equal(t, 0, denied.Remaining)
	assert.WithinDuration(t, time.Now().Add(time.Minute), denied.ResetTime, 2*time.Second)

	got, err := mr.Get("weeskitten:ratelimit:login:admin")
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	mr.FastForward(61 * time.Second)
	res := l.Check(ctx, "login:admin", p)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestRedisStoreErrorFailsOpen(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	res := NewLimiter(store).Check(context.Background(), "login:admin", LoginPolicy)
	assert.True(t, res.Allowed)
}
