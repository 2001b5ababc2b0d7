package models

import (
	"time"
)

// RealTimeQuote holds a live OHLCV snapshot from the quote provider.
// MarketCap is frequently absent (zero) and is resolved downstream.
type RealTimeQuote struct {
	Code          string    `json:"code"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePct     float64   `json:"change_p"`
	Volume        int64     `json:"volume"`
	MarketCap     float64   `json:"market_cap,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// CompanyInfo holds provider company metadata and fundamentals.
// DividendYield is the provider's raw fraction (0.043 = 4.3%); the
// normalizer converts to a percentage.
type CompanyInfo struct {
	Symbol            string    `json:"symbol"`
	Name              string    `json:"name"`
	Sector            string    `json:"sector"`
	Industry          string    `json:"industry"`
	Currency          string    `json:"currency"`
	PE                float64   `json:"pe_ratio"`
	PB                float64   `json:"pb_ratio"`
	EPS               float64   `json:"eps"`
	DividendYield     float64   `json:"dividend_yield"`
	Beta              float64   `json:"beta"`
	SharesOutstanding int64     `json:"shares_outstanding"`
	MarketCap         float64   `json:"market_cap"`
	High52Week        float64   `json:"high_52_week"`
	Low52Week         float64   `json:"low_52_week"`
	LastUpdated       time.Time `json:"last_updated"`
}

// SummaryInfo is the provider's lightweight summary endpoint response,
// used as the second step of market-cap resolution.
type SummaryInfo struct {
	Symbol    string  `json:"symbol"`
	MarketCap float64 `json:"market_cap"`
}

// HistoryResponse wraps an ordered (oldest to newest) bar series.
type HistoryResponse struct {
	Data []PriceBar `json:"data"`
}
