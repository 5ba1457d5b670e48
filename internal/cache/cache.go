// Package cache provides a Redis-backed read-through cache for responses
// fetched from backend services, plus a small counter primitive used for
// login attempt tracking.
//
// The cache is strictly best-effort: a backend failure on read is treated
// as a miss, and a failure on write is logged and swallowed. Callers never
// fail because Redis is down.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finpay/gateway/internal/config"
	"github.com/finpay/gateway/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Store is the narrow backend boundary the cache operates on. The production
// implementation is Redis; tests substitute an in-memory map.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// ErrCacheMiss is returned by [Store.Get] when the key is absent.
var ErrCacheMiss = redis.Nil

type redisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg config.Cache, log *logger.Logger) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisStore").Msg("error connecting to redis (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewRedisStore").Msg("connected to redis successfully")

	return &redisStore{client: client}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *redisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Increment bumps a counter and applies ttl only when the key is created,
// so the counting window is anchored at the first attempt.
func (s *redisStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err = s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// Cache wraps a [Store] with JSON serialization and a default TTL.
type Cache struct {
	store      Store
	defaultTTL time.Duration
	logger     *logger.Logger
}

// New constructs a [Cache] over the given store.
func New(store Store, defaultTTL time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		store:      store,
		defaultTTL: defaultTTL,
		logger:     log,
	}
}

// DefaultTTL reports the TTL applied when a caller passes zero.
func (c *Cache) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Delete removes a cached entry. Errors are logged and swallowed.
func (c *Cache) Delete(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).Msg("cache delete failed")
	}
}

// Increment bumps the named counter within a ttl-bounded window.
func (c *Cache) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return c.store.Increment(ctx, key, ttl)
}

// GetFromCache retrieves and unmarshals a cached value. The second return
// value reports whether the key was present. Backend errors are logged and
// reported as a miss.
func GetFromCache[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var value T

	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if err != ErrCacheMiss {
			logger.FromContext(ctx).Err(err).Str("key", key).Msg("cache get failed")
		}
		return value, false
	}

	if err = json.Unmarshal([]byte(raw), &value); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).Msg("cache entry is not valid JSON")
		return value, false
	}

	return value, true
}

// SetToCache marshals and stores a value under key. A zero ttl falls back to
// the cache default. Failures are logged and swallowed: the caller already
// has the value in hand.
func SetToCache[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).Msg("cache value is not serializable")
		return
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err = c.store.Set(ctx, key, string(raw), ttl); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).Msg("cache set failed")
	}
}

// GetOrCompute returns the cached value for key when present, and otherwise
// invokes compute, stores its result and returns it. The boolean reports
// whether the value came from the cache.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, bool, error) {
	if value, ok := GetFromCache[T](ctx, c, key); ok {
		return value, true, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return value, false, err
	}

	SetToCache(ctx, c, key, value, ttl)
	return value, false, nil
}
