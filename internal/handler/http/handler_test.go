// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FinPay Authors

package http

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/finpay/gateway/internal/cache"
	"github.com/finpay/gateway/internal/config"
	"github.com/finpay/gateway/internal/gateway"
	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/observe"
	"github.com/finpay/gateway/internal/ratelimit"
	"github.com/finpay/gateway/internal/rpc"
	"github.com/finpay/gateway/internal/service"
	"github.com/finpay/gateway/internal/store"
	"github.com/finpay/gateway/models"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
)

// ─────────────────────────────────────────────
// In-memory stores
// ─────────────────────────────────────────────

type memUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]models.User // by email
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{nextID: 1, users: make(map[string]models.User)}
}

func (m *memUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return models.User{}, store.ErrEmailAlreadyExists
	}
	user.UserID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	m.users[user.Email] = user
	return user, nil
}

func (m *memUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return user, nil
}

func (m *memUserRepository) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.UserID == userID {
			return user, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

type memRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func newMemRefreshTokenRepository() *memRefreshTokenRepository {
	return &memRefreshTokenRepository{tokens: make(map[string]models.RefreshToken)}
}

func (m *memRefreshTokenRepository) Create(_ context.Context, token models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.Token] = token
	return nil
}

func (m *memRefreshTokenRepository) Find(_ context.Context, token string) (models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found, ok := m.tokens[token]
	if !ok {
		return models.RefreshToken{}, store.ErrRefreshTokenNotFound
	}
	return found, nil
}

func (m *memRefreshTokenRepository) Delete(_ context.Context, token string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[token]; !ok {
		return 0, nil
	}
	delete(m.tokens, token)
	return 1, nil
}

func (m *memRefreshTokenRepository) DeleteByUserID(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for key, token := range m.tokens {
		if token.UserID == userID {
			delete(m.tokens, key)
			removed++
		}
	}
	return removed, nil
}

func (m *memRefreshTokenRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for key, token := range m.tokens {
		if token.Expired(now) {
			delete(m.tokens, key)
			removed++
		}
	}
	return removed, nil
}

// ─────────────────────────────────────────────
// In-memory cache backend
// ─────────────────────────────────────────────

type memCacheStore struct {
	mu     sync.Mutex
	values map[string]string
	counts map[string]int64
}

func newMemCacheStore() *memCacheStore {
	return &memCacheStore{values: make(map[string]string), counts: make(map[string]int64)}
}

func (m *memCacheStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return value, nil
}

func (m *memCacheStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memCacheStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.counts, key)
	return nil
}

func (m *memCacheStore) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

// ─────────────────────────────────────────────
// Fake backend
// ─────────────────────────────────────────────

// fakeBackend plays the downstream gRPC service: it records calls and
// produces a canned reply through the dispatcher's reply pointer.
type fakeBackend struct {
	mu      sync.Mutex
	calls   int
	methods []string
	err     error
	reply   func(method string, reply any)
}

func (f *fakeBackend) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.methods = append(f.methods, method)
	if f.err != nil {
		return f.err
	}
	if f.reply != nil {
		f.reply(method, reply)
	}
	return nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRegistry struct {
	client *rpc.Client
}

func (f *fakeRegistry) Client(entity string) (*rpc.Client, error) {
	return f.client, nil
}

// ─────────────────────────────────────────────
// Test fixture
// ─────────────────────────────────────────────

type fixture struct {
	handler   *Handler
	backend   *fakeBackend
	cacheMem  *memCacheStore
	users     *memUserRepository
	refresh   *memRefreshTokenRepository
	rateLimit config.RateLimit
}

type fixtureOption func(*fixture)

func withRateLimitConfig(capacity int, refill time.Duration) fixtureOption {
	return func(f *fixture) {
		f.rateLimit = config.RateLimit{Capacity: capacity, RefillInterval: refill}
	}
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetMeterProvider(sdkmetric.NewMeterProvider())

	f := &fixture{
		backend:   &fakeBackend{},
		cacheMem:  newMemCacheStore(),
		users:     newMemUserRepository(),
		refresh:   newMemRefreshTokenRepository(),
		rateLimit: config.RateLimit{Capacity: 1000, RefillInterval: time.Millisecond},
	}
	for _, opt := range opts {
		opt(f)
	}

	log := logger.Nop()
	c := cache.New(f.cacheMem, 5*time.Minute, log)

	cfg := config.StructuredConfig{
		Auth: config.Auth{
			TokenSignKey:    "test-sign-key",
			TokenIssuer:     "finpay-gateway",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}

	storages := &store.Storages{
		UserRepository:         f.users,
		RefreshTokenRepository: f.refresh,
	}
	services := service.NewServices(storages, c, cfg, log)

	tracker, err := observe.NewTracker("test")
	require.NoError(t, err)

	registry := &fakeRegistry{client: rpc.NewClient(f.backend, time.Second, log)}
	dispatcher := gateway.NewDispatcher(registry, c, tracker)

	limiter := ratelimit.New(f.rateLimit, log)

	f.handler = NewHandler(services, dispatcher, limiter, log)
	return f
}
