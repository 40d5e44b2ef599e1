// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksat Tulegenov

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the identity core depends on before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.AccessTokenSecret == "" || cfg.Auth.RefreshTokenSecret == "" {
		return ErrInvalidAuthConfigs
	}

	// Independent secrets per token class: a leaked access secret must not
	// be able to forge refresh tokens.
	if cfg.Auth.AccessTokenSecret == cfg.Auth.RefreshTokenSecret {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.OTPLength < 4 || cfg.Auth.OTPTTL <= 0 || cfg.Auth.OTPMaxAttempts < 1 {
		return ErrInvalidOTPConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.RateLimit.Window <= 0 || cfg.RateLimit.Limit < 1 {
		return ErrInvalidRateLimitConfigs
	}

	if cfg.Workers.SweepInterval <= 0 || cfg.Workers.LedgerRetention <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
