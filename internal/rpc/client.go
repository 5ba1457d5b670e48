package rpc

import (
	"context"
	"time"

	"github.com/finpay/gateway/internal/errs"
	"github.com/finpay/gateway/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Invoker is the transport boundary the client calls through. It is
// satisfied by [*grpc.ClientConn]; tests substitute a fake.
type Invoker interface {
	Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error
}

// Client issues unary calls to one backend service. Every call gets a
// deadline, outgoing trace metadata, and status-to-taxonomy error
// translation.
type Client struct {
	invoker Invoker
	timeout time.Duration
	logger  *logger.Logger
}

// Dial opens a connection to a backend service address.
func Dial(address string) (*grpc.ClientConn, error) {
	return grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
}

// NewClient wraps an established connection with the gateway's call policy.
func NewClient(invoker Invoker, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		invoker: invoker,
		timeout: timeout,
		logger:  log,
	}
}

// Call performs one unary RPC. The reply is unmarshalled into reply, which
// must be a pointer. Errors come back translated into the gateway taxonomy.
func (c *Client) Call(ctx context.Context, method string, req, reply any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx = injectTraceContext(ctx)

	if err := c.invoker.Invoke(ctx, method, req, reply); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*Client.Call").
			Str("method", method).
			Msg("backend call failed")
		return errs.FromGRPC(err)
	}

	return nil
}
