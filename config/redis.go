package config

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisConnectTimeout = 10 * time.Second

var (
	ErrRedisURL      = errors.New("config: failed to parse redis connection string")
	ErrRedisNotReady = errors.New("config: redis did not answer ping")
)

// ConnectRedis opens a client for c.RedisURL and pings it within
// c.RedisConnectTimeout.
func (c Config) ConnectRedis(ctx context.Context) (*redis.Client, error) {
	opt, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, errors.Join(ErrRedisURL, err)
	}

	timeout := c.RedisConnectTimeout
	if timeout <= 0 {
		timeout = defaultRedisConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}
	return rdb, nil
}
