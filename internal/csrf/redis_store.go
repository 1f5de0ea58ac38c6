package csrf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps tokens in Redis with the token expiry as key TTL.
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
}

func NewRedisStore(rdb redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "weeskitten:csrf"
	}
	return &RedisStore{rdb: rdb, prefix: strings.Trim(prefix, ":")}
}

func (s *RedisStore) redisKey(adminID uint, token string) string {
	return s.prefix + ":" + key(adminID, token)
}

func (s *RedisStore) Save(ctx context.Context, adminID uint, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, s.redisKey(adminID, token), expiresAt.UTC().Format(time.RFC3339Nano), ttl).Err()
}

func (s *RedisStore) Lookup(ctx context.Context, adminID uint, token string) (time.Time, bool, error) {
	val, err := s.rdb.Get(ctx, s.redisKey(adminID, token)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse csrf expiry: %w", err)
	}
	return expiresAt, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, adminID uint, token string) error {
	return s.rdb.Del(ctx, s.redisKey(adminID, token)).Err()
}
