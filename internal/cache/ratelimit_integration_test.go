//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/wordledger/wordledger/internal/cache"
	"github.com/wordledger/wordledger/internal/testutil"
)

func newRedisLimiter(t *testing.T) (context.Context, *cache.RedisLimiter) {
	t.Helper()

	url := testutil.RequireEnv(t, "REDIS_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	c, err := cache.NewRedisLimiter(ctx, url, cache.WithKeyPrefix("wordledger:test:ip:"))
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}
	return ctx, c
}

func TestIntegrationRateLimit_BurstThenLimited(t *testing.T) {
	ctx, c := newRedisLimiter(t)

	for i := 0; i < 3; i++ {
		res, err := c.CheckIPRateLimit(ctx, "203.0.113.7", 1, 3)
		if err != nil {
			t.Fatalf("CheckIPRateLimit() error = %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d denied within burst", i+1)
		}
	}

	res, err := c.CheckIPRateLimit(ctx, "203.0.113.7", 1, 3)
	if err != nil {
		t.Fatalf("CheckIPRateLimit() error = %v", err)
	}
	if res.Allowed {
		t.Fatal("request beyond burst allowed")
	}
	if res.RetryAfter < time.Second {
		t.Errorf("RetryAfter = %v, want at least 1s", res.RetryAfter)
	}

	// Buckets are per IP.
	other, err := c.CheckIPRateLimit(ctx, "203.0.113.8", 1, 3)
	if err != nil {
		t.Fatalf("CheckIPRateLimit() error = %v", err)
	}
	if !other.Allowed {
		t.Error("separate IP shares the bucket")
	}
}

func TestIntegrationRateLimit_Ping(t *testing.T) {
	ctx, c := newRedisLimiter(t)

	if err := c.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
