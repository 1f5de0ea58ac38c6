package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript applies one attempt atomically. It returns {count, ttl_ms, allowed}.
var hitScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
local max = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local ttl = redis.call('PTTL', KEYS[1])
if count == 0 or ttl < 0 then
  redis.call('SET', KEYS[1], 1, 'PX', window)
  return {1, window, 1}
end
if count >= max then
  return {count, ttl, 0}
end
count = redis.call('INCR', KEYS[1])
return {count, ttl, 1}
`)

// RedisStore shares windows between API instances. The key TTL is the window.
type RedisStore struct {
	rdb    redis.Scripter
	prefix string
}

type RedisOption func(*RedisStore)

func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = strings.Trim(prefix, ":") }
}

func NewRedisStore(rdb redis.Scripter, opts ...RedisOption) *RedisStore {
	s := &RedisStore{rdb: rdb, prefix: "weeskitten:ratelimit"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Hit(ctx context.Context, key string, p Policy, now time.Time) (Result, error) {
	windowMs := p.Window.Milliseconds()
	if windowMs <= 0 {
		windowMs = 1
	}

	raw, err := hitScript.Run(ctx, s.rdb, []string{s.prefix + ":" + key}, p.MaxAttempts, windowMs).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit script: %w", err)
	}
	if len(raw) != 3 {
		return Result{}, fmt.Errorf("ratelimit script: unexpected reply %v", raw)
	}

	count, ttl, allowed := int(raw[0]), time.Duration(raw[1])*time.Millisecond, raw[2] == 1
	res := Result{Allowed: allowed, ResetTime: now.Add(ttl)}
	if allowed {
		res.Remaining = p.MaxAttempts - count
	}
	return res, nil
}
