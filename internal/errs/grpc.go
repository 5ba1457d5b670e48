package errs

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToGRPC converts a taxonomy error into a gRPC status.
//
// Internal and upstream detail is replaced by a generic message; the caller
// is expected to have logged the original error already.
func ToGRPC(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	switch KindOf(err) {
	case KindNotFound:
		return status.New(codes.NotFound, MessageOf(err))
	case KindValidation:
		return status.New(codes.InvalidArgument, MessageOf(err))
	case KindUnauthorized:
		return status.New(codes.Unauthenticated, MessageOf(err))
	case KindTokenExpired:
		return status.New(codes.Unauthenticated, "token has expired")
	case KindConflict:
		return status.New(codes.AlreadyExists, MessageOf(err))
	default: // KindInternal, KindUpstream
		return status.New(codes.Internal, "internal server error")
	}
}

// FromGRPC converts a downstream gRPC failure into the gateway taxonomy.
//
// Statuses the gateway does not model more precisely become KindUpstream so
// that the HTTP layer still produces a well-formed error body.
func FromGRPC(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return Wrap(KindUpstream, "upstream call failed", err)
	}

	switch st.Code() {
	case codes.OK:
		return nil
	case codes.NotFound:
		return Wrap(KindNotFound, st.Message(), err)
	case codes.InvalidArgument:
		return Wrap(KindValidation, st.Message(), err)
	case codes.Unauthenticated:
		return Wrap(KindUnauthorized, st.Message(), err)
	case codes.AlreadyExists, codes.Aborted:
		return Wrap(KindConflict, st.Message(), err)
	case codes.Internal:
		return Wrap(KindInternal, "upstream internal error", err)
	default:
		return Wrap(KindUpstream, "upstream call failed", err)
	}
}
