// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"time"

	"github.com/foliohq/folio/internal/models"
)

// QuoteClient is the boundary with the external quote provider. The
// provider is an untyped, occasionally-missing-field, occasionally
// unavailable remote service; callers must tolerate failure at every
// call site.
type QuoteClient interface {
	// GetQuote retrieves the current price snapshot for a symbol.
	GetQuote(ctx context.Context, symbol string) (*models.RealTimeQuote, error)

	// GetCompanyInfo retrieves company metadata and fundamentals.
	GetCompanyInfo(ctx context.Context, symbol string) (*models.CompanyInfo, error)

	// GetSummary retrieves the lightweight summary endpoint response.
	GetSummary(ctx context.Context, symbol string) (*models.SummaryInfo, error)

	// GetHistory retrieves ordered (oldest to newest) OHLCV bars.
	GetHistory(ctx context.Context, symbol string, opts ...HistoryOption) (*models.HistoryResponse, error)
}

// HistoryParams configures a history request
type HistoryParams struct {
	From   time.Time
	To     time.Time
	Period string // "d", "w", "m"
}

// HistoryOption configures history retrieval
type HistoryOption func(*HistoryParams)

// WithDateRange sets the date range for history retrieval
func WithDateRange(from, to time.Time) HistoryOption {
	return func(p *HistoryParams) {
		p.From = from
		p.To = to
	}
}

// WithPeriod sets the bar interval ("d", "w", "m")
func WithPeriod(period string) HistoryOption {
	return func(p *HistoryParams) {
		p.Period = period
	}
}
