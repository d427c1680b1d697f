package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys in Redis.
const DefaultRedisPrefix = "session:"

var _ Store = (*RedisStore)(nil)

// RedisStore is a Redis backed Store. Expiry is delegated to key TTLs.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore returns a RedisStore using DefaultRedisPrefix.
func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: DefaultRedisPrefix}
}

// WithPrefix returns a copy of s storing keys under prefix.
func (s *RedisStore) WithPrefix(prefix string) *RedisStore {
	return &RedisStore{rdb: s.rdb, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, data []byte, expiresAt time.Time) error {
	if id == "" {
		return ErrInvalidID
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, id)
	}
	return s.rdb.Set(ctx, s.prefix+id, data, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.prefix+id).Err()
}
