package service

import (
	"context"
	"time"

	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/store"
)

// TokenJanitor removes expired refresh tokens on a fixed interval so the
// token table does not grow without bound. Expired tokens are already
// rejected on use; this is purely hygiene.
type TokenJanitor struct {
	refreshTokens store.RefreshTokenRepository
	interval      time.Duration
	logger        *logger.Logger
}

func NewTokenJanitor(refreshTokens store.RefreshTokenRepository, interval time.Duration, log *logger.Logger) *TokenJanitor {
	return &TokenJanitor{
		refreshTokens: refreshTokens,
		interval:      interval,
		logger:        log,
	}
}

// Run sweeps until ctx is cancelled. Intended to be launched as a background
// goroutine at startup.
func (j *TokenJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := j.refreshTokens.DeleteExpired(ctx, time.Now())
			if err != nil {
				j.logger.Err(err).Msg("expired token sweep failed")
				continue
			}
			if removed > 0 {
				j.logger.Info().Int64("removed", removed).Msg("expired refresh tokens removed")
			}
		}
	}
}
