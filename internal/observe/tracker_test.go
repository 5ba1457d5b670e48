package observe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newTestTracker registers in-memory providers globally and returns the
// tracker plus hooks to read back the recorded telemetry.
func newTestTracker(t *testing.T) (*Tracker, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)

	otel.SetTextMapPropagator(propagation.TraceContext{})

	tracker, err := NewTracker("test")
	require.NoError(t, err)

	return tracker, recorder, reader
}

func TestTracker_StartAndCompleteEndsSpan(t *testing.T) {
	tracker, recorder, _ := newTestTracker(t)

	ctx, call := tracker.Start(context.Background(), "FindCardByNumber",
		attribute.String("card_number", "************1111"))
	call.Complete(ctx, StatusSuccess, "card found")

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "FindCardByNumber", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	// started and completed events in order
	require.Len(t, span.Events(), 2)
	assert.Equal(t, "operation started", span.Events()[0].Name)
	assert.Equal(t, "operation completed", span.Events()[1].Name)
}

func TestTracker_ErrorOutcomeSetsErrorStatus(t *testing.T) {
	tracker, recorder, _ := newTestTracker(t)

	ctx, call := tracker.Start(context.Background(), "FindCardByNumber")
	call.Complete(ctx, StatusError, "card not found")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "card not found", spans[0].Status().Description)
}

func TestTracker_DoubleCompleteEndsSpanOnce(t *testing.T) {
	tracker, recorder, _ := newTestTracker(t)

	ctx, call := tracker.Start(context.Background(), "Login")
	call.Complete(ctx, StatusError, "first")
	call.Complete(ctx, StatusSuccess, "second")

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	// the first completion wins
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracker_MetricsCarryMethodAndStatus(t *testing.T) {
	tracker, _, reader := newTestTracker(t)

	ctx, call := tracker.Start(context.Background(), "Login")
	call.Complete(ctx, StatusError, "bad credentials")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	var counter *metricdata.Sum[int64]
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "gateway_requests_total" {
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				counter = &sum
			}
		}
	}
	require.NotNil(t, counter, "gateway_requests_total not recorded")
	require.Len(t, counter.DataPoints, 1)

	dp := counter.DataPoints[0]
	assert.Equal(t, int64(1), dp.Value)

	method, _ := dp.Attributes.Value("method")
	status, _ := dp.Attributes.Value("status")
	assert.Equal(t, "Login", method.AsString())
	assert.Equal(t, "error", status.AsString())
}

func TestTracker_InjectWritesTraceparent(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	ctx, call := tracker.Start(context.Background(), "FindMerchantByAPIKey")
	defer call.Complete(ctx, StatusSuccess, "done")

	carrier := propagation.MapCarrier{}
	tracker.Inject(ctx, carrier)

	assert.NotEmpty(t, carrier.Get("traceparent"))
}
