package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finpay/gateway/internal/cache"
	"github.com/finpay/gateway/internal/errs"
	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/observe"
	"github.com/finpay/gateway/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeInvoker struct {
	calls int
	err   error
	reply func(reply any)
}

func (f *fakeInvoker) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	f.calls++
	if f.reply != nil {
		f.reply(reply)
	}
	return f.err
}

type fakeRegistry struct {
	client *rpc.Client
	err    error
}

func (f *fakeRegistry) Client(entity string) (*rpc.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

// memStore is a minimal in-memory cache backend.
type memStore struct {
	values map[string]string
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return value, nil
}

func (m *memStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *memStore) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	return 0, nil
}

type cardView struct {
	Number string `json:"card_number"`
}

func newTestDispatcher(t *testing.T, invoker *fakeInvoker) (*Dispatcher, *memStore, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	otel.SetMeterProvider(sdkmetric.NewMeterProvider())

	tracker, err := observe.NewTracker("test")
	require.NoError(t, err)

	store := &memStore{values: make(map[string]string)}
	c := cache.New(store, 5*time.Minute, logger.Nop())

	registry := &fakeRegistry{client: rpc.NewClient(invoker, time.Second, logger.Nop())}

	return NewDispatcher(registry, c, tracker), store, recorder
}

func TestCall_SuccessCachesReply(t *testing.T) {
	invoker := &fakeInvoker{reply: func(reply any) {
		reply.(*cardView).Number = "4111111111111111"
	}}
	d, store, recorder := newTestDispatcher(t, invoker)

	req := Request{
		Entity:   "card",
		Method:   "/card.CardService/FindByNumber",
		Op:       "FindCardByNumber",
		CacheKey: "finpay:card:find_by_number:abc",
		Body:     struct{}{},
	}

	got, err := Call[cardView](context.Background(), d, req)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", got.Number)
	assert.Contains(t, store.values, req.CacheKey)

	// second call is served from cache, not the backend
	got, err = Call[cardView](context.Background(), d, req)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", got.Number)
	assert.Equal(t, 1, invoker.calls)

	// both calls ended their spans
	assert.Len(t, recorder.Ended(), 2)
}

func TestCall_BackendErrorIsNotCached(t *testing.T) {
	invoker := &fakeInvoker{err: status.Error(codes.NotFound, "card not found")}
	d, store, recorder := newTestDispatcher(t, invoker)

	req := Request{
		Entity:   "card",
		Method:   "/card.CardService/FindByNumber",
		Op:       "FindCardByNumber",
		CacheKey: "finpay:card:find_by_number:abc",
		Body:     struct{}{},
	}

	_, err := Call[cardView](context.Background(), d, req)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Empty(t, store.values)

	// the span ended despite the failure
	require.Len(t, recorder.Ended(), 1)
}

func TestCall_NoCacheKeySkipsCache(t *testing.T) {
	invoker := &fakeInvoker{}
	d, store, _ := newTestDispatcher(t, invoker)

	_, err := Call[cardView](context.Background(), d, Request{
		Entity: "card",
		Method: "/card.CardService/FindByNumber",
		Op:     "FindCardByNumber",
		Body:   struct{}{},
	})
	require.NoError(t, err)
	assert.Empty(t, store.values)
}

func TestCall_UnknownEntityFailsWithEndedSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	otel.SetMeterProvider(sdkmetric.NewMeterProvider())

	tracker, err := observe.NewTracker("test")
	require.NoError(t, err)

	store := &memStore{values: make(map[string]string)}
	d := NewDispatcher(
		&fakeRegistry{err: errors.New(`no backend configured for entity "card"`)},
		cache.New(store, time.Minute, logger.Nop()),
		tracker,
	)

	_, err = Call[cardView](context.Background(), d, Request{Entity: "card", Op: "FindCardByNumber"})
	require.Error(t, err)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	assert.Len(t, recorder.Ended(), 1)
}
