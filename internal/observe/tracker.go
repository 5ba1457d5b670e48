package observe

import (
	"context"
	"sync"
	"time"

	"github.com/finpay/gateway/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Status labels the terminal outcome of a tracked operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Tracker creates spans and records request metrics for gateway operations.
// One Tracker is shared by all request paths.
type Tracker struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewTracker builds a [Tracker] on the globally registered tracer and meter
// providers.
func NewTracker(name string) (*Tracker, error) {
	meter := otel.Meter(name)

	requests, err := meter.Int64Counter(
		"gateway_requests_total",
		metric.WithDescription("Count of gateway operations by method and status."),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"gateway_request_duration_seconds",
		metric.WithDescription("Latency of gateway operations in seconds."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Tracker{
		tracer:   otel.Tracer(name),
		requests: requests,
		duration: duration,
	}, nil
}

// Call is the handle for one tracked operation. It must be completed exactly
// once; extra completions are ignored.
type Call struct {
	tracker *Tracker
	span    trace.Span
	op      string
	start   time.Time
	once    sync.Once
}

// Start opens a span for the named operation, records an "operation started"
// event and returns a context carrying the span together with the [Call]
// handle the caller completes when the operation settles.
func (t *Tracker) Start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, *Call) {
	ctx, span := t.tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)

	span.AddEvent("operation started", trace.WithAttributes(
		attribute.String("operation", op),
	))

	logger.FromContext(ctx).Debug().Str("operation", op).Msg("operation started")

	return ctx, &Call{
		tracker: t,
		span:    span,
		op:      op,
		start:   time.Now(),
	}
}

// Inject writes the active trace context from ctx into the carrier using the
// registered propagator. Used to forward traceparent headers to backends.
func (t *Tracker) Inject(ctx context.Context, carrier propagation.TextMapCarrier) {
	otel.GetTextMapPropagator().Inject(ctx, carrier)
}

// Complete settles the call: it records a completion event with the outcome
// and elapsed time, bumps the request counter and duration histogram, and
// ends the span. Safe to call more than once; only the first call counts.
func (c *Call) Complete(ctx context.Context, status Status, message string) {
	c.once.Do(func() {
		elapsed := time.Since(c.start).Seconds()

		c.span.AddEvent("operation completed", trace.WithAttributes(
			attribute.String("status", string(status)),
			attribute.Float64("duration_secs", elapsed),
			attribute.String("message", message),
		))

		if status == StatusError {
			c.span.SetStatus(codes.Error, message)
			logger.FromContext(ctx).Error().
				Str("operation", c.op).
				Str("message", message).
				Msg("operation failed")
		} else {
			c.span.SetStatus(codes.Ok, "")
			logger.FromContext(ctx).Debug().
				Str("operation", c.op).
				Msg("operation completed")
		}

		labels := metric.WithAttributes(
			attribute.String("method", c.op),
			attribute.String("status", string(status)),
		)
		c.tracker.requests.Add(ctx, 1, labels)
		c.tracker.duration.Record(ctx, elapsed, labels)

		c.span.End()
	})
}
