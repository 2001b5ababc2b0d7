package marketdata

import (
	"context"

	"github.com/foliohq/folio/internal/models"
)

// capInput is the uniform input handed to every resolution step.
type capInput struct {
	symbol  string
	quote   *models.RealTimeQuote // may be nil
	company *models.CompanyInfo   // may be nil
	price   float64               // merged current price
}

// capStrategy is one step of the market-cap resolution chain. A step
// either produces a usable (> 0) value or defers to the next one; step
// failures are contained here and never abort the refresh cycle.
type capStrategy struct {
	name    string
	resolve func(ctx context.Context, in *capInput) (float64, bool)
}

// capChain returns the ordered resolution steps. The order is
// significant: cheap in-hand data first, network calls second, static
// estimates last.
func (s *Service) capChain() []capStrategy {
	return []capStrategy{
		{name: "quote_field", resolve: s.capFromQuote},
		{name: "summary_endpoint", resolve: s.capFromSummary},
		{name: "shares_times_price", resolve: s.capFromShares},
		{name: "static_estimate", resolve: s.capFromEstimates},
	}
}

// resolveMarketCap runs the chain once per refresh, short-circuiting at
// the first success. An unresolved cap is not an error: the record's
// prior value, when present, is retained (market cap never regresses
// from known to unknown).
func (s *Service) resolveMarketCap(ctx context.Context, record *models.SecurityRecord, quote *models.RealTimeQuote, company *models.CompanyInfo) {
	in := &capInput{
		symbol:  record.Symbol,
		quote:   quote,
		company: company,
	}
	if record.Price != nil {
		in.price = record.Price.Current
	}

	for _, step := range s.capChain() {
		if mc, ok := step.resolve(ctx, in); ok && mc > 0 {
			s.logger.Debug().Str("symbol", record.Symbol).Str("step", step.name).Float64("market_cap", mc).Msg("Market cap resolved")
			record.MarketCap = mc
			return
		}
	}

	if record.MarketCap > 0 {
		s.logger.Debug().Str("symbol", record.Symbol).Msg("Market cap unresolved, retaining prior value")
	}
}

// capFromQuote uses a market-cap field already present on the primary
// quote or company responses.
func (s *Service) capFromQuote(_ context.Context, in *capInput) (float64, bool) {
	if in.quote != nil && in.quote.MarketCap > 0 {
		return in.quote.MarketCap, true
	}
	if in.company != nil && in.company.MarketCap > 0 {
		return in.company.MarketCap, true
	}
	return 0, false
}

// capFromSummary queries the provider's summary endpoint.
func (s *Service) capFromSummary(ctx context.Context, in *capInput) (float64, bool) {
	summary, err := s.client.GetSummary(ctx, in.symbol)
	if err != nil {
		s.logger.Debug().Str("symbol", in.symbol).Err(err).Msg("Summary endpoint failed, trying next step")
		return 0, false
	}
	return summary.MarketCap, summary.MarketCap > 0
}

// capFromShares computes shares outstanding times current price.
func (s *Service) capFromShares(ctx context.Context, in *capInput) (float64, bool) {
	if in.price <= 0 {
		return 0, false
	}

	var shares int64
	if in.company != nil {
		shares = in.company.SharesOutstanding
	}
	if shares == 0 {
		info, err := s.client.GetCompanyInfo(ctx, in.symbol)
		if err != nil {
			s.logger.Debug().Str("symbol", in.symbol).Err(err).Msg("Shares lookup failed, trying next step")
			return 0, false
		}
		shares = info.SharesOutstanding
	}

	mc := float64(shares) * in.price
	return mc, mc > 0
}

// capFromEstimates consults the static per-symbol estimate table.
func (s *Service) capFromEstimates(_ context.Context, in *capInput) (float64, bool) {
	est, ok := s.market.CapEstimates[in.symbol]
	return est, ok && est > 0
}
