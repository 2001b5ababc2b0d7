package marketdata

import (
	"context"
	"errors"
	"time"

	"github.com/foliohq/folio/internal/models"
)

// fetchResult carries one settled sub-fetch: a value or an error, never
// both. Failures stay visible to the merge step instead of being
// swallowed at the call site.
type fetchResult[T any] struct {
	val T
	err error
}

func (r fetchResult[T]) ok() bool { return r.err == nil }

// refresh runs one full refresh cycle for a symbol: settle all
// sub-fetches, merge successes over the existing record, resolve market
// cap, recompute indicators, persist once.
//
// The cycle runs on a context detached from the caller: a client
// disconnect must not abort a refresh already in flight (the completed
// write warms the cache for the next request).
func (s *Service) refresh(parent context.Context, symbol string, existing *models.SecurityRecord) (*models.SecurityRecord, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.cycleTimeout)
	defer cancel()

	now := time.Now()

	// Settle all three sub-fetches concurrently; one failing must not
	// cancel the others.
	var (
		quoteRes   fetchResult[*models.RealTimeQuote]
		companyRes fetchResult[*models.CompanyInfo]
		historyRes fetchResult[[]models.PriceBar]
	)
	done := make(chan struct{}, 3)

	go func() {
		defer func() { done <- struct{}{} }()
		callCtx, callCancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer callCancel()
		quoteRes.val, quoteRes.err = s.client.GetQuote(callCtx, symbol)
	}()
	go func() {
		defer func() { done <- struct{}{} }()
		callCtx, callCancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer callCancel()
		companyRes.val, companyRes.err = s.client.GetCompanyInfo(callCtx, symbol)
	}()
	go func() {
		defer func() { done <- struct{}{} }()
		callCtx, callCancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer callCancel()
		historyRes.val = s.fetchHistory(callCtx, symbol, historyLookback)
	}()

	for i := 0; i < 3; i++ {
		<-done
	}

	if quoteRes.err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(quoteRes.err).Msg("Quote fetch failed")
	}
	if companyRes.err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(companyRes.err).Msg("Company info fetch failed")
	}

	if !quoteRes.ok() && !companyRes.ok() && len(historyRes.val) == 0 {
		return nil, errors.New("all provider fetches failed")
	}

	// Build the full working copy before the single write-back, so
	// concurrent readers only ever see pre- or post-refresh state.
	record := cloneRecord(existing)
	if record == nil {
		record = &models.SecurityRecord{
			Symbol:   symbol,
			Exchange: s.market.DefaultExchange,
			Currency: s.market.Currency,
			IsActive: true,
		}
	}

	if quoteRes.ok() {
		s.mergeQuote(record, quoteRes.val)
	}
	if companyRes.ok() {
		s.mergeCompanyInfo(record, companyRes.val)
	}
	if bars := historyRes.val; len(bars) > 0 {
		s.mergeHistory(record, bars)
	}

	s.resolveMarketCap(ctx, record, quoteRes.val, companyRes.val)

	record.LastUpdated = now
	if err := s.storage.SecurityStore().SaveSecurity(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// cloneRecord deep-copies a record so the merge never mutates the
// version concurrent readers may hold.
func cloneRecord(rec *models.SecurityRecord) *models.SecurityRecord {
	if rec == nil {
		return nil
	}
	out := *rec
	if rec.Price != nil {
		p := *rec.Price
		out.Price = &p
	}
	if rec.Volume != nil {
		v := *rec.Volume
		out.Volume = &v
	}
	if rec.Fundamentals != nil {
		f := *rec.Fundamentals
		out.Fundamentals = &f
	}
	if rec.Indicators != nil {
		ind := *rec.Indicators
		out.Indicators = &ind
	}
	if rec.Returns != nil {
		r := *rec.Returns
		out.Returns = &r
	}
	return &out
}
