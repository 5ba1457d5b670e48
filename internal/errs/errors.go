// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FinPay Authors

// Package errs defines the gateway-wide error taxonomy and the total
// translations between storage, service, RPC, and HTTP representations.
//
// Every failure that crosses a layer boundary is normalised into an [*Error]
// carrying a [Kind]. The translators in this package are total: no Kind is
// left unmapped, and unknown upstream statuses collapse into KindUpstream.
package errs

import (
	"errors"
	"fmt"
)

// Kind enumerates the failure categories the gateway distinguishes.
type Kind int

const (
	// KindInternal is the zero value: an unexpected server-side failure.
	// Its detail is logged but never shown to API clients verbatim.
	KindInternal Kind = iota

	// KindNotFound means the requested resource does not exist.
	KindNotFound

	// KindValidation means the request was syntactically or semantically
	// invalid. The message aggregates all field errors.
	KindValidation

	// KindUnauthorized means the caller presented no credential, a malformed
	// credential, or wrong login data.
	KindUnauthorized

	// KindTokenExpired means the presented token was once valid but its
	// lifetime has passed. Distinct from KindUnauthorized so that clients
	// can trigger a refresh instead of a re-login.
	KindTokenExpired

	// KindConflict means the operation collides with existing state
	// (e.g. duplicate email at registration).
	KindConflict

	// KindUpstream wraps a failure reported by a downstream RPC service
	// whose status the gateway does not model more precisely.
	KindUpstream
)

// String returns a stable lower-case name for the kind, used in logs and
// metric labels.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindTokenExpired:
		return "token_expired"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is the tagged error type carried between gateway layers.
//
// Message is safe to show to clients for every kind except KindInternal and
// KindUpstream, where the HTTP translator substitutes a generic message and
// the original detail stays in server logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an [*Error] with the given kind and client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an [*Error] preserving err as the cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the [Kind] from err. Errors that are not [*Error] (or do
// not wrap one) are classified as KindInternal, keeping the mapping total.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of err, falling back to a
// generic message for untagged errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
