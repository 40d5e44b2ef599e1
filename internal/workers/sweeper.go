// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksat Tulegenov

package workers

import (
	"context"
	"time"

	"github.com/tmaksat/newsauth/internal/config"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/rate"
	"github.com/tmaksat/newsauth/internal/store"
)

// Sweeper periodically removes rows the request path only ever checks, never
// cleans up: expired refresh tokens, abandoned signups and password resets,
// and idle rate-limiter entries. Expiry is always enforced at read time, so
// the sweeper is purely about keeping storage bounded.
type Sweeper struct {
	pending       store.PendingRegistrationRepository
	resets        store.PasswordResetRepository
	refreshTokens store.RefreshTokenRepository
	limiter       *rate.Limiter

	interval  time.Duration
	retention time.Duration
	logger    *logger.Logger
}

func NewSweeper(repos *store.Repositories, limiter *rate.Limiter, cfg config.Workers, log *logger.Logger) *Sweeper {
	child := log.GetChildLogger()
	child.Logger = child.With().Str("worker", "sweeper").Logger()

	return &Sweeper{
		pending:       repos.PendingRegistrationRepository,
		resets:        repos.PasswordResetRepository,
		refreshTokens: repos.RefreshTokenRepository,
		limiter:       limiter,
		interval:      cfg.SweepInterval,
		retention:     cfg.LedgerRetention,
		logger:        child,
	}
}

// Run sweeps once per interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("retention", s.retention).
		Msg("sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()
	cutoff := now.Add(-s.retention)

	tokens, err := s.refreshTokens.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("sweeping expired refresh tokens")
	}

	signups, err := s.pending.DeleteStale(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("sweeping stale pending registrations")
	}

	resets, err := s.resets.DeleteStale(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("sweeping stale password resets")
	}

	limiterEntries := s.limiter.Prune()

	s.logger.Debug().
		Int64("refresh_tokens", tokens).
		Int64("pending_registrations", signups).
		Int64("password_resets", resets).
		Int("limiter_entries", limiterEntries).
		Msg("sweep finished")
}
