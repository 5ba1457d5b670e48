// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FinPay Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// gateway invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive sentinel
// error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" || cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.AccessTokenTTL >= cfg.Auth.RefreshTokenTTL {
		return ErrInvalidAuthConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.RateLimit.Capacity <= 0 || cfg.RateLimit.RefillInterval <= 0 {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}
