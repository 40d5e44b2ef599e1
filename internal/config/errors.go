package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates missing or unusable token settings
	// (empty or identical signing secrets, non-positive lifetimes).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidOTPConfigs indicates an unusable OTP policy
	// (too short a code, non-positive TTL or attempt cap).
	ErrInvalidOTPConfigs = errors.New("invalid otp configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (missing address or non-positive request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidRateLimitConfigs indicates an unusable throttle policy
	// (non-positive window or cap).
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (non-positive sweep interval or ledger retention).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
