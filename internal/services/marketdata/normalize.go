package marketdata

import (
	"github.com/foliohq/folio/internal/models"
	"github.com/foliohq/folio/internal/signals"
)

// mergeQuote folds a live quote into the working record's price and
// volume blocks. Fields the quote does not carry keep their prior value.
func (s *Service) mergeQuote(record *models.SecurityRecord, quote *models.RealTimeQuote) {
	if record.Price == nil {
		record.Price = &models.PriceBlock{}
	}
	if record.Volume == nil {
		record.Volume = &models.VolumeBlock{}
	}

	p := record.Price
	p.Current = quote.Close
	p.Open = quote.Open
	p.DayHigh = quote.High
	p.DayLow = quote.Low
	if quote.PreviousClose > 0 {
		p.PreviousClose = quote.PreviousClose
	}
	p.Change = quote.Change
	p.ChangePct = quote.ChangePct
	if p.Change == 0 && p.PreviousClose > 0 {
		p.Change = p.Current - p.PreviousClose
		p.ChangePct = p.Change / p.PreviousClose * 100
	}

	record.Volume.Current = quote.Volume
}

// mergeCompanyInfo folds company metadata into the working record,
// converting provider fractions into the percentages the domain uses.
func (s *Service) mergeCompanyInfo(record *models.SecurityRecord, info *models.CompanyInfo) {
	if info.Name != "" {
		record.Name = info.Name
	}
	if info.Currency != "" {
		record.Currency = info.Currency
	} else if record.Currency == "" {
		record.Currency = s.market.Currency
	}

	if record.Fundamentals == nil {
		record.Fundamentals = &models.FundamentalsBlock{}
	}
	f := record.Fundamentals
	if info.PE != 0 {
		f.PE = info.PE
	}
	if info.PB != 0 {
		f.PB = info.PB
	}
	if info.EPS != 0 {
		f.EPS = info.EPS
	}
	if info.DividendYield != 0 {
		// Provider reports a fraction (0.043); the domain uses percent.
		f.DividendYield = info.DividendYield * 100
	}
	if info.Beta != 0 {
		f.Beta = info.Beta
	}
	if info.SharesOutstanding > 0 {
		f.SharesOutstanding = info.SharesOutstanding
	}
	if info.Sector != "" {
		f.Sector = info.Sector
	}
	if info.Industry != "" {
		f.Industry = info.Industry
	}

	if record.Price == nil {
		record.Price = &models.PriceBlock{}
	}
	if info.High52Week > 0 {
		record.Price.High52Week = info.High52Week
	}
	if info.Low52Week > 0 {
		record.Price.Low52Week = info.Low52Week
	}
}

// mergeHistory recomputes everything derived from the bar series:
// indicators, trailing returns, average volume, and 52-week range
// fallbacks when the company info did not carry them.
func (s *Service) mergeHistory(record *models.SecurityRecord, bars []models.PriceBar) {
	record.Indicators = s.computer.Compute(bars)
	record.Returns = computeReturns(bars)

	if record.Volume == nil {
		record.Volume = &models.VolumeBlock{}
	}
	if avg, ok := signals.AverageVolume(bars, 20); ok {
		record.Volume.Average = avg
	}

	if record.Price == nil {
		record.Price = &models.PriceBlock{}
	}
	p := record.Price
	if p.Current == 0 {
		p.Current = bars[len(bars)-1].Close
	}
	if p.PreviousClose == 0 && len(bars) > 1 {
		p.PreviousClose = bars[len(bars)-2].Close
	}
	if p.High52Week == 0 || p.Low52Week == 0 {
		high, low := yearRange(bars)
		if p.High52Week == 0 {
			p.High52Week = high
		}
		if p.Low52Week == 0 {
			p.Low52Week = low
		}
	}
}

// yearRange returns the high/low over the last 252 trading days.
func yearRange(bars []models.PriceBar) (high, low float64) {
	start := len(bars) - 252
	if start < 0 {
		start = 0
	}
	for i := start; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if low == 0 || bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low
}
