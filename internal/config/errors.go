package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates invalid token settings (for example,
	// missing sign key, non-positive TTLs, or an access-token lifetime
	// that is not shorter than the refresh-token lifetime).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidRateLimitConfigs indicates an invalid rate-limit policy
	// (for example, zero capacity or refill interval).
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
)
