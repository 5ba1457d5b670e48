// Package rpc provides the gRPC plumbing for calls to backend services:
// a JSON codec, trace-context propagation into outgoing metadata, and a
// thin client that applies per-call deadlines and error translation.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype requested on every backend call.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec serializes request and reply messages as JSON. Backend services
// speak the same encoding, which lets plain Go structs travel over gRPC
// without generated message types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}
