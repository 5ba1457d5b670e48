// Package utils holds small helpers shared across the gateway: context keys,
// JWT generation and validation, opaque token generation, and HTTP response
// writing.
package utils

import "context"

// contextKey is a private type for context keys, preventing collisions with
// string-based keys from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated user's identifier in the request
// context. Set by the auth middleware after token verification.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user's identifier.
// ok is false when no user is attached or the value has the wrong type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
