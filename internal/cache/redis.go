// Package cache provides the rate limiter stores used by the words API.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter keeps the per-IP token buckets in Redis so every API
// replica shares one budget per client.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

// RedisOption tunes a RedisLimiter.
type RedisOption func(*redisSettings)

type redisSettings struct {
	prefix      string
	poolSize    int
	dialTimeout time.Duration
	opTimeout   time.Duration
}

func defaultRedisSettings() redisSettings {
	return redisSettings{
		prefix:      rateLimitIPPrefix,
		poolSize:    4,
		dialTimeout: 2 * time.Second,
		opTimeout:   500 * time.Millisecond,
	}
}

// WithKeyPrefix namespaces the bucket keys, for sharing one Redis
// database between deployments.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *redisSettings) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithPoolSize caps the connections held open to Redis.
func WithPoolSize(n int) RedisOption {
	return func(s *redisSettings) {
		if n > 0 {
			s.poolSize = n
		}
	}
}

// redisOptions parses the URL and applies the limiter's settings. Each
// bucket check is a single short script call, so reads and writes get
// a tight timeout and a failed check falls open quickly.
func redisOptions(redisURL string, opts ...RedisOption) (*redis.Options, redisSettings, error) {
	s := defaultRedisSettings()
	for _, opt := range opts {
		opt(&s)
	}

	o, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, s, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	o.PoolSize = s.poolSize
	o.MinIdleConns = 1
	o.DialTimeout = s.dialTimeout
	o.ReadTimeout = s.opTimeout
	o.WriteTimeout = s.opTimeout
	o.MaxRetries = 1

	return o, s, nil
}

// NewRedisLimiter connects to redisURL and verifies the connection.
func NewRedisLimiter(ctx context.Context, redisURL string, opts ...RedisOption) (*RedisLimiter, error) {
	o, s, err := redisOptions(redisURL, opts...)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(o)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisLimiter{client: client, prefix: s.prefix}, nil
}

// Ping reports whether Redis answers. It backs the redis readiness check.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

// Client exposes the connection for test cleanup.
func (l *RedisLimiter) Client() *redis.Client {
	return l.client
}
