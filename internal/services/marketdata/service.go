// Package marketdata implements the freshness-gated refresh orchestrator:
// it decides when cached security data is stale, refreshes it from the
// quote provider with per-fetch failure isolation, and folds the results
// into the persisted record.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/foliohq/folio/internal/clients/marketfeed"
	"github.com/foliohq/folio/internal/common"
	"github.com/foliohq/folio/internal/interfaces"
	"github.com/foliohq/folio/internal/models"
	"github.com/foliohq/folio/internal/signals"
)

// ErrUnavailable is returned when a symbol cannot be refreshed and no
// cached record exists to fall back on.
var ErrUnavailable = errors.New("security data unavailable")

// Service implements MarketDataService
type Service struct {
	storage  interfaces.StorageManager
	client   interfaces.QuoteClient
	computer *signals.Computer
	logger   *common.Logger

	format       marketfeed.SymbolFormatter
	market       common.MarketConfig
	quoteTTL     time.Duration
	trendingTTL  time.Duration
	fetchTimeout time.Duration
	cycleTimeout time.Duration

	// group collapses concurrent refreshes of the same symbol into one
	// provider round-trip.
	group singleflight.Group
}

// NewService creates a new market data service
func NewService(
	storage interfaces.StorageManager,
	client interfaces.QuoteClient,
	config *common.Config,
	logger *common.Logger,
) *Service {
	return &Service{
		storage:      storage,
		client:       client,
		computer:     signals.NewComputer(),
		logger:       logger,
		format:       marketfeed.NewSuffixFormatter(config.Market.DefaultExchange, config.Market.ExchangeSuffixes),
		market:       config.Market,
		quoteTTL:     config.Freshness.GetQuoteTTL(),
		trendingTTL:  config.Freshness.GetTrendingTTL(),
		fetchTimeout: config.Freshness.GetFetchTimeout(),
		cycleTimeout: config.Freshness.GetRefreshTimeout(),
	}
}

// GetOrRefresh serves the record for a symbol. Fresh records are served
// from cache with no provider call. Stale or missing records trigger a
// refresh; when the refresh fails outright, a stale cached record is
// served flagged rather than failing the request.
func (s *Service) GetOrRefresh(ctx context.Context, symbol string) (*models.SecurityData, error) {
	return s.getOrRefresh(ctx, symbol, s.quoteTTL, false)
}

// ForceRefresh bypasses the freshness gate for a symbol.
func (s *Service) ForceRefresh(ctx context.Context, symbol string) (*models.SecurityData, error) {
	return s.getOrRefresh(ctx, symbol, 0, true)
}

func (s *Service) getOrRefresh(ctx context.Context, symbol string, ttl time.Duration, force bool) (*models.SecurityData, error) {
	sym := s.format(symbol)

	existing, err := s.storage.SecurityStore().GetSecurity(ctx, sym)
	if err != nil {
		existing = nil
	}

	if !force && existing != nil && common.IsFresh(existing.LastUpdated, ttl) {
		return &models.SecurityData{
			Record: existing,
			Source: models.SourceCache,
			AsOf:   existing.LastUpdated,
		}, nil
	}

	// Collapse concurrent refreshes of the same symbol into one cycle.
	v, refreshErr, _ := s.group.Do(sym, func() (interface{}, error) {
		return s.refresh(ctx, sym, existing)
	})

	if refreshErr != nil {
		if existing != nil {
			s.logger.Warn().Str("symbol", sym).Err(refreshErr).Msg("Refresh failed, serving stale record")
			return &models.SecurityData{
				Record: existing,
				Source: models.SourceStale,
				AsOf:   existing.LastUpdated,
			}, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, sym, refreshErr)
	}

	record := v.(*models.SecurityRecord)
	return &models.SecurityData{
		Record: record,
		Source: models.SourceLive,
		AsOf:   record.LastUpdated,
	}, nil
}

// BulkGetOrRefresh serves records for multiple symbols under the bulk
// staleness threshold. Unresolvable symbols are skipped, not fatal.
func (s *Service) BulkGetOrRefresh(ctx context.Context, symbols []string) ([]*models.SecurityData, error) {
	const maxConcurrent = 5
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex

	results := make([]*models.SecurityData, len(symbols))
	for i, symbol := range symbols {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			defer func() { <-sem }()

			data, err := s.getOrRefresh(ctx, symbol, s.trendingTTL, false)
			if err != nil {
				s.logger.Warn().Str("symbol", symbol).Err(err).Msg("Bulk lookup skipped symbol")
				return
			}
			mu.Lock()
			results[i] = data
			mu.Unlock()
		}(i, symbol)
	}
	wg.Wait()

	out := make([]*models.SecurityData, 0, len(symbols))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// RefreshStale refreshes every active record older than the bulk
// threshold. Used by the background scheduler.
func (s *Service) RefreshStale(ctx context.Context) error {
	cutoff := time.Now().Add(-s.trendingTTL)
	stale, err := s.storage.SecurityStore().FindStaleBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to find stale records: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	s.logger.Info().Int("count", len(stale)).Msg("Refreshing stale records")

	symbols := make([]string, len(stale))
	for i, rec := range stale {
		symbols[i] = rec.Symbol
	}
	_, err = s.BulkGetOrRefresh(ctx, symbols)
	return err
}

// Deactivate soft-deletes a symbol. The record is kept but excluded
// from listings and scheduled refreshes.
func (s *Service) Deactivate(ctx context.Context, symbol string) error {
	return s.storage.SecurityStore().Deactivate(ctx, s.format(symbol))
}

// Ensure Service implements MarketDataService
var _ interfaces.MarketDataService = (*Service)(nil)
