package marketdata

import (
	"context"
	"fmt"
	"sort"

	"github.com/foliohq/folio/internal/models"
	"github.com/foliohq/folio/internal/signals"
)

// Trending refreshes whatever part of the active universe has gone
// stale under the bulk threshold, then scores and ranks every active
// record. The score is the deterministic weighted formula over volume
// spike, monthly momentum, and RSI extremity.
func (s *Service) Trending(ctx context.Context, limit int) ([]*models.TrendingEntry, error) {
	if err := s.RefreshStale(ctx); err != nil {
		// Stale entries degrade the ranking but don't invalidate it.
		s.logger.Warn().Err(err).Msg("Stale refresh before trending failed")
	}

	records, err := s.storage.SecurityStore().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities: %w", err)
	}

	entries := make([]*models.TrendingEntry, 0, len(records))
	for _, rec := range records {
		score, reasons := signals.TrendingScore(trendingInputs(rec))

		entry := &models.TrendingEntry{
			Symbol:  rec.Symbol,
			Name:    rec.Name,
			Score:   score,
			Reasons: reasons,
			Trend:   models.TrendUnknown,
		}
		if rec.Price != nil {
			entry.Price = rec.Price.Current
		}
		if rec.Indicators != nil {
			entry.Trend = rec.Indicators.Trend
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// trendingInputs extracts score components from a persisted record.
// Absent components stay nil and contribute nothing.
func trendingInputs(rec *models.SecurityRecord) signals.TrendingInputs {
	var in signals.TrendingInputs

	if rec.Volume != nil && rec.Volume.Average > 0 {
		ratio := float64(rec.Volume.Current) / float64(rec.Volume.Average)
		in.VolumeRatio = &ratio
	}
	if rec.Returns != nil {
		in.MonthChangePct = rec.Returns.OneMonth
	}
	if rec.Indicators != nil {
		in.RSI = rec.Indicators.RSI
	}
	return in
}
