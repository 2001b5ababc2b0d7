package interfaces

import (
	"context"

	"github.com/foliohq/folio/internal/models"
)

// MarketDataService is the freshness-gated refresh orchestrator.
type MarketDataService interface {
	// GetOrRefresh serves the record for a symbol: cached when fresh,
	// refreshed from the provider when stale or missing, and the stale
	// cached copy (flagged) when a refresh fails outright.
	GetOrRefresh(ctx context.Context, symbol string) (*models.SecurityData, error)

	// BulkGetOrRefresh serves records for multiple symbols under the
	// bulk staleness threshold. Symbols that cannot be resolved at all
	// are omitted rather than failing the set.
	BulkGetOrRefresh(ctx context.Context, symbols []string) ([]*models.SecurityData, error)

	// ForceRefresh bypasses the freshness gate for a symbol.
	ForceRefresh(ctx context.Context, symbol string) (*models.SecurityData, error)

	// Trending scores the active universe and returns the top entries.
	Trending(ctx context.Context, limit int) ([]*models.TrendingEntry, error)

	// RefreshStale refreshes every active record older than the bulk
	// threshold; used by the background scheduler.
	RefreshStale(ctx context.Context) error

	// Deactivate soft-deletes a symbol.
	Deactivate(ctx context.Context, symbol string) error
}
