package marketdata

import (
	"context"
	"time"

	"github.com/foliohq/folio/internal/interfaces"
	"github.com/foliohq/folio/internal/models"
)

// historyLookback is how far back the bar series reaches. One year of
// daily bars covers every indicator period and the returns windows.
const historyLookback = 370 * 24 * time.Hour

// fetchHistory retrieves the bar series for a symbol. Provider errors
// and empty results degrade to an empty slice so downstream indicator
// computation reports "insufficient data" instead of failing the cycle.
func (s *Service) fetchHistory(ctx context.Context, symbol string, lookback time.Duration) []models.PriceBar {
	now := time.Now()
	resp, err := s.client.GetHistory(ctx, symbol, interfaces.WithDateRange(now.Add(-lookback), now))
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("History fetch failed")
		return nil
	}

	// The client already drops null closes; guard against zeroed bars too.
	bars := make([]models.PriceBar, 0, len(resp.Data))
	for _, b := range resp.Data {
		if b.Close <= 0 {
			continue
		}
		bars = append(bars, b)
	}
	return bars
}
