// Package ratelimit implements a per-client token bucket limiter for the
// HTTP surface. Each client key owns an independent bucket; buckets refill
// at a fixed interval and idle buckets are evicted to bound memory.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/finpay/gateway/internal/config"
	"github.com/finpay/gateway/internal/logger"
	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks one token bucket per client key.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	limit  rate.Limit
	burst  int
	logger *logger.Logger

	// idleAfter controls eviction of buckets the housekeeping loop has not
	// seen traffic on. A full idle bucket carries no state worth keeping.
	idleAfter time.Duration
}

// New builds a [Limiter] from configuration: cfg.Capacity tokens per bucket,
// one token restored every cfg.RefillInterval.
func New(cfg config.RateLimit, log *logger.Logger) *Limiter {
	return &Limiter{
		buckets:   make(map[string]*bucket),
		limit:     rate.Every(cfg.RefillInterval),
		burst:     cfg.Capacity,
		logger:    log,
		idleAfter: 10 * time.Minute,
	}
}

// Allow reports whether the client identified by key may proceed, consuming
// one token when it may. A key seen for the first time starts with a full
// bucket.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()

	return b.limiter.Allow()
}

// Run evicts idle buckets until ctx is cancelled. Intended to be launched as
// a background goroutine alongside the HTTP server.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.idleAfter)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := l.evictIdle(time.Now())
			if evicted > 0 {
				l.logger.Debug().Int("evicted", evicted).Msg("evicted idle rate limit buckets")
			}
		}
	}
}

func (l *Limiter) evictIdle(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleAfter {
			delete(l.buckets, key)
			evicted++
		}
	}
	return evicted
}
