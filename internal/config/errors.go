package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates an invalid secret-key policy
	// (for example, a non-positive minimum key length).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidRateLimitConfigs indicates invalid rate-limit settings
	// (for example, a zero window or non-positive request budget).
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
)
