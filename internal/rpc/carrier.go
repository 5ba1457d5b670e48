package rpc

import (
	"context"

	"go.opentelemetry.io/otel"
	"google.golang.org/grpc/metadata"
)

// metadataCarrier adapts [metadata.MD] to the propagator's carrier
// interface so traceparent headers can be written into outgoing metadata.
type metadataCarrier metadata.MD

func (mc metadataCarrier) Get(key string) string {
	values := metadata.MD(mc).Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (mc metadataCarrier) Set(key, value string) {
	metadata.MD(mc).Set(key, value)
}

func (mc metadataCarrier) Keys() []string {
	keys := make([]string, 0, len(mc))
	for key := range mc {
		keys = append(keys, key)
	}
	return keys
}

// injectTraceContext returns ctx with outgoing metadata carrying the active
// trace context. Existing metadata entries are preserved.
func injectTraceContext(ctx context.Context) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		md = metadata.MD{}
	} else {
		md = md.Copy()
	}

	otel.GetTextMapPropagator().Inject(ctx, metadataCarrier(md))

	return metadata.NewOutgoingContext(ctx, md)
}
