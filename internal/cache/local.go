package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// localIdleTTL is how long an idle IP bucket is kept in memory.
const localIdleTTL = 10 * time.Minute

// LocalLimiter is an in-process per-IP token bucket. It serves a single API
// instance when Redis is not configured.
type LocalLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	now       func() time.Time
	lastSweep time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter creates an empty LocalLimiter.
func NewLocalLimiter() *LocalLimiter {
	return &LocalLimiter{
		buckets: make(map[string]*localBucket),
		now:     time.Now,
	}
}

// CheckIPRateLimit takes one token from the bucket for ip.
func (l *LocalLimiter) CheckIPRateLimit(_ context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	if ratePerSecond <= 0 {
		return unlimited(burst), nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	key := hashIP(ip)
	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	resetAt := now.Add(time.Duration(float64(time.Second) / float64(ratePerSecond)))

	if b.limiter.AllowN(now, 1) {
		return &RateLimitResult{
			Allowed:   true,
			Remaining: int64(b.limiter.TokensAt(now)),
			ResetAt:   resetAt,
		}, nil
	}

	r := b.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)

	return &RateLimitResult{
		Allowed:    false,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retryAfterSeconds(wait),
	}, nil
}

// Len returns the number of tracked IPs.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets at most once per localIdleTTL. Callers hold mu.
func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < localIdleTTL {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= localIdleTTL {
			delete(l.buckets, key)
		}
	}
}
