// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-natours/internal/logger"
)

// ResetTokenSweeper periodically clears expired password reset tokens so
// that abandoned reset requests do not linger in the users table.
type ResetTokenSweeper struct {
	store    ResetTokenStore
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

// NewResetTokenSweeper returns a sweeper that runs every interval. It
// returns nil when interval is not positive, which [NewWorkers] skips.
func NewResetTokenSweeper(store ResetTokenStore, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		return nil
	}
	return &ResetTokenSweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
		logger:   log,
	}
}

// Run sweeps once per interval until ctx is cancelled.
func (s *ResetTokenSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("reset token sweeper started")
	defer s.logger.Info().Msg("reset token sweeper stopped")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.Sweep(ctx)
		}
	}
}

// Sweep clears the tokens expired at the current time.
func (s *ResetTokenSweeper) Sweep(ctx context.Context) (int64, error) {
	cleared, err := s.store.ClearExpiredResetTokens(s.logger.WithContext(ctx), s.now())
	if err != nil {
		s.logger.Err(err).Msg("error sweeping expired reset tokens")
		return 0, err
	}

	if cleared > 0 {
		s.logger.Info().Int64("cleared", cleared).Msg("expired reset tokens cleared")
	}
	return cleared, nil
}
