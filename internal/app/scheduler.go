package app

import (
	"context"
	"time"

	"github.com/foliohq/folio/internal/common"
	"github.com/foliohq/folio/internal/interfaces"
)

// startRefreshScheduler refreshes stale active securities on a fixed
// interval so that trending listings and bulk lookups stay warm.
func startRefreshScheduler(ctx context.Context, marketData interfaces.MarketDataService, logger *common.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Refresh scheduler: stopped")
			return
		case <-ticker.C:
			refreshCycle(ctx, marketData, logger)
		}
	}
}

func refreshCycle(ctx context.Context, marketData interfaces.MarketDataService, logger *common.Logger) {
	start := time.Now()

	if err := marketData.RefreshStale(ctx); err != nil {
		logger.Warn().Err(err).Msg("Refresh scheduler: cycle failed")
		return
	}

	logger.Info().
		Dur("elapsed", time.Since(start)).
		Msg("Refresh scheduler: cycle complete")
}
