// Package gateway composes the crosscutting call pipeline applied to every
// proxied backend operation: a span with start and completion events, the
// read-through response cache, the deadline-bounded RPC itself and error
// translation into the gateway taxonomy.
package gateway

import (
	"context"
	"time"

	"github.com/finpay/gateway/internal/cache"
	"github.com/finpay/gateway/internal/errs"
	"github.com/finpay/gateway/internal/observe"
	"github.com/finpay/gateway/internal/rpc"
	"go.opentelemetry.io/otel/attribute"
)

// BackendRegistry resolves an entity name to its connected client.
// Satisfied by [*rpc.Backends].
type BackendRegistry interface {
	Client(entity string) (*rpc.Client, error)
}

// Dispatcher executes proxied backend operations.
type Dispatcher struct {
	backends BackendRegistry
	cache    *cache.Cache
	tracker  *observe.Tracker
}

// NewDispatcher wires the pipeline components together.
func NewDispatcher(backends BackendRegistry, c *cache.Cache, tracker *observe.Tracker) *Dispatcher {
	return &Dispatcher{
		backends: backends,
		cache:    c,
		tracker:  tracker,
	}
}

// Request describes one proxied operation.
type Request struct {
	// Entity selects the backend service from the registry.
	Entity string
	// Method is the full gRPC method name, e.g. "/card.CardService/FindByNumber".
	Method string
	// Op names the span and the metric series for this operation.
	Op string
	// CacheKey enables the response cache when non-empty. Keys must never
	// embed raw sensitive parameters; see [cache.Key].
	CacheKey string
	// TTL overrides the cache default when positive.
	TTL time.Duration
	// Attrs are attached to the span. Sensitive values must be masked
	// before they get here.
	Attrs []attribute.KeyValue
	// Body is the request message sent to the backend.
	Body any
}

// Call runs one operation through the pipeline and returns the typed reply.
//
// The span is completed on every path out of this function, including cache
// hits and registry failures.
func Call[T any](ctx context.Context, d *Dispatcher, req Request) (T, error) {
	ctx, call := d.tracker.Start(ctx, req.Op, req.Attrs...)

	if req.CacheKey != "" {
		if value, ok := cache.GetFromCache[T](ctx, d.cache, req.CacheKey); ok {
			call.Complete(ctx, observe.StatusSuccess, "served from cache")
			return value, nil
		}
	}

	var reply T

	client, err := d.backends.Client(req.Entity)
	if err != nil {
		wrapped := errs.Wrap(errs.KindInternal, "backend not available", err)
		call.Complete(ctx, observe.StatusError, errs.MessageOf(wrapped))
		return reply, wrapped
	}

	if err = client.Call(ctx, req.Method, req.Body, &reply); err != nil {
		call.Complete(ctx, observe.StatusError, errs.MessageOf(err))
		return reply, err
	}

	if req.CacheKey != "" {
		cache.SetToCache(ctx, d.cache, req.CacheKey, reply, req.TTL)
	}

	call.Complete(ctx, observe.StatusSuccess, "operation completed successfully")
	return reply, nil
}
