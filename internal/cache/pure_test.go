package cache

import (
	"context"
	"testing"
	"time"
)

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"

	if hashIP(ip) != hashIP(ip) {
		t.Error("Same IP should produce same hash")
	}
}

func TestHashIP_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv4 localhost", "127.0.0.1"},
		{"IPv6 localhost", "::1"},
		{"IPv6 full", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if hash := hashIP(tt.ip); len(hash) != 16 {
				t.Errorf("hashIP(%q) length = %d, want 16", tt.ip, len(hash))
			}
		})
	}
}

func TestHashIP_Different(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip1  string
		ip2  string
	}{
		{"different IPv4", "192.168.1.1", "192.168.1.2"},
		{"IPv4 vs IPv6", "127.0.0.1", "::1"},
		{"public vs private", "8.8.8.8", "192.168.1.1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if hashIP(tt.ip1) == hashIP(tt.ip2) {
				t.Errorf("Different IPs should produce different hashes: %q and %q", tt.ip1, tt.ip2)
			}
		})
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, time.Second},
		{100 * time.Millisecond, time.Second},
		{time.Second, time.Second},
		{1500 * time.Millisecond, 2 * time.Second},
	}

	for _, tt := range tests {
		tt := tt
		if got := retryAfterSeconds(tt.in); got != tt.want {
			t.Errorf("retryAfterSeconds(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLocalLimiter_BurstThenReject(t *testing.T) {
	t.Parallel()

	l := NewLocalLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		res, err := l.CheckIPRateLimit(ctx, "10.0.0.1", 1, 3)
		if err != nil {
			t.Fatalf("CheckIPRateLimit() error = %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d rejected, want allowed within burst", i+1)
		}
	}

	res, err := l.CheckIPRateLimit(ctx, "10.0.0.1", 1, 3)
	if err != nil {
		t.Fatalf("CheckIPRateLimit() error = %v", err)
	}
	if res.Allowed {
		t.Fatal("request beyond burst allowed")
	}
	if res.RetryAfter != time.Second {
		t.Errorf("RetryAfter = %v, want 1s", res.RetryAfter)
	}

	// Other clients have their own bucket.
	res, _ = l.CheckIPRateLimit(ctx, "10.0.0.2", 1, 3)
	if !res.Allowed {
		t.Error("second IP rejected, want allowed")
	}

	// One second refills one token.
	now = now.Add(time.Second)
	res, _ = l.CheckIPRateLimit(ctx, "10.0.0.1", 1, 3)
	if !res.Allowed {
		t.Error("request after refill rejected, want allowed")
	}
}

func TestLocalLimiter_Unlimited(t *testing.T) {
	t.Parallel()

	l := NewLocalLimiter()
	for i := 0; i < 100; i++ {
		res, _ := l.CheckIPRateLimit(context.Background(), "10.0.0.1", 0, 1)
		if !res.Allowed {
			t.Fatal("zero rate should not limit")
		}
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for unlimited checks", l.Len())
	}
}

func TestLocalLimiter_SweepsIdleBuckets(t *testing.T) {
	t.Parallel()

	l := NewLocalLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, _ = l.CheckIPRateLimit(context.Background(), "10.0.0.1", 5, 5)
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}

	now = now.Add(localIdleTTL + time.Second)
	_, _ = l.CheckIPRateLimit(context.Background(), "10.0.0.2", 5, 5)
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after idle sweep", l.Len())
	}
}

func TestRedisOptions(t *testing.T) {
	t.Parallel()

	o, s, err := redisOptions("redis://localhost:6379/2")
	if err != nil {
		t.Fatalf("redisOptions() error = %v", err)
	}
	if o.DB != 2 {
		t.Errorf("DB = %d, want 2", o.DB)
	}
	if o.PoolSize != 4 || o.ReadTimeout != 500*time.Millisecond {
		t.Errorf("PoolSize = %d, ReadTimeout = %v; want 4, 500ms", o.PoolSize, o.ReadTimeout)
	}
	if s.prefix != rateLimitIPPrefix {
		t.Errorf("prefix = %q, want %q", s.prefix, rateLimitIPPrefix)
	}

	o, s, err = redisOptions("redis://localhost:6379/0", WithKeyPrefix("staging:ip:"), WithPoolSize(16), WithPoolSize(0))
	if err != nil {
		t.Fatalf("redisOptions() error = %v", err)
	}
	if o.PoolSize != 16 {
		t.Errorf("PoolSize = %d, want 16", o.PoolSize)
	}
	if s.prefix != "staging:ip:" {
		t.Errorf("prefix = %q, want staging:ip:", s.prefix)
	}

	if _, _, err := redisOptions("not a url"); err == nil {
		t.Error("redisOptions() accepted an invalid URL")
	}
}
