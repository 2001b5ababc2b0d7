// Package models defines data structures for Folio
package models

import (
	"time"
)

// TrendType classifies the direction of a price series.
type TrendType string

const (
	TrendBullish  TrendType = "Bullish"
	TrendBearish  TrendType = "Bearish"
	TrendSideways TrendType = "Sideways"
	TrendUnknown  TrendType = "Unknown"
)

// QuoteSource indicates where a served record came from.
type QuoteSource string

const (
	// SourceCache means the record was fresh and served without a provider call.
	SourceCache QuoteSource = "cache"
	// SourceLive means the record was refreshed from the provider on this request.
	SourceLive QuoteSource = "live"
	// SourceStale means the refresh failed and a stale cached record was served.
	SourceStale QuoteSource = "stale"
)

// PriceBar represents a single trading interval. Bars are ordered
// oldest to newest and are recomputed per refresh, never persisted.
type PriceBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
}

// SecurityRecord is the persisted per-symbol entity. MarketCap of zero
// means unresolved; once non-zero it is never regressed to zero by a
// later refresh (see marketdata merge policy).
type SecurityRecord struct {
	Symbol       string               `json:"symbol"`
	Exchange     string               `json:"exchange"`
	Name         string               `json:"name,omitempty"`
	Currency     string               `json:"currency,omitempty"`
	Price        *PriceBlock          `json:"price,omitempty"`
	Volume       *VolumeBlock         `json:"volume,omitempty"`
	Fundamentals *FundamentalsBlock   `json:"fundamentals,omitempty"`
	MarketCap    float64              `json:"market_cap,omitempty"`
	Indicators   *TechnicalIndicators `json:"technical_indicators,omitempty"`
	Returns      *ReturnsBlock        `json:"returns,omitempty"`
	LastUpdated  time.Time            `json:"last_updated"`
	IsActive     bool                 `json:"is_active"`
}

// Age returns how long ago the record was last refreshed.
func (r *SecurityRecord) Age(now time.Time) time.Duration {
	if r == nil || r.LastUpdated.IsZero() {
		return 1<<63 - 1
	}
	return now.Sub(r.LastUpdated)
}

// PriceBlock holds current price information for a security.
type PriceBlock struct {
	Current       float64 `json:"current"`
	Open          float64 `json:"open"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	PreviousClose float64 `json:"previous_close"`
	Change        float64 `json:"change"`
	ChangePct     float64 `json:"change_pct"`
	High52Week    float64 `json:"high_52_week"`
	Low52Week     float64 `json:"low_52_week"`
}

// VolumeBlock holds current and average trading volume.
type VolumeBlock struct {
	Current int64 `json:"current"`
	Average int64 `json:"average"`
}

// FundamentalsBlock holds fundamental ratios for a security.
// DividendYield is a percentage (provider fractions are converted up).
type FundamentalsBlock struct {
	PE                float64 `json:"pe_ratio,omitempty"`
	PB                float64 `json:"pb_ratio,omitempty"`
	EPS               float64 `json:"eps,omitempty"`
	DividendYield     float64 `json:"dividend_yield,omitempty"`
	Beta              float64 `json:"beta,omitempty"`
	SharesOutstanding int64   `json:"shares_outstanding,omitempty"`
	Sector            string  `json:"sector,omitempty"`
	Industry          string  `json:"industry,omitempty"`
}

// ReturnsBlock holds trailing percentage returns. Nil entries mean the
// bar history was too short to compute that window.
type ReturnsBlock struct {
	OneDay     *float64 `json:"one_day,omitempty"`
	OneWeek    *float64 `json:"one_week,omitempty"`
	OneMonth   *float64 `json:"one_month,omitempty"`
	ThreeMonth *float64 `json:"three_month,omitempty"`
	SixMonth   *float64 `json:"six_month,omitempty"`
	OneYear    *float64 `json:"one_year,omitempty"`
	YTD        *float64 `json:"ytd,omitempty"`
}

// TechnicalIndicators is a cached snapshot of the most recent indicator
// computation. Nil pointers mean the indicator was unavailable for the
// bar history at compute time — a valid sparse-data state, not a fault.
type TechnicalIndicators struct {
	RSI        *float64        `json:"rsi,omitempty"`
	SMA20      *float64        `json:"sma_20,omitempty"`
	SMA50      *float64        `json:"sma_50,omitempty"`
	EMA12      *float64        `json:"ema_12,omitempty"`
	EMA26      *float64        `json:"ema_26,omitempty"`
	MACD       *MACDIndicator  `json:"macd,omitempty"`
	Bollinger  *BollingerBands `json:"bollinger,omitempty"`
	Support    *float64        `json:"support,omitempty"`
	Resistance *float64        `json:"resistance,omitempty"`
	Trend      TrendType       `json:"trend"`
	ComputedAt time.Time       `json:"computed_at"`
}

// MACDIndicator holds the MACD line and its 9-period signal EMA.
type MACDIndicator struct {
	Value     float64 `json:"value"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands holds the 20-period Bollinger Bands.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// SecurityData is the service-level envelope for a served record,
// carrying data-age metadata alongside the record itself.
type SecurityData struct {
	Record *SecurityRecord `json:"record"`
	Source QuoteSource     `json:"source"`
	AsOf   time.Time       `json:"as_of"`
}

// TrendingEntry is one row of a trending listing: a numeric score plus
// the reason tags that contributed to it.
type TrendingEntry struct {
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name,omitempty"`
	Score   float64   `json:"score"`
	Reasons []string  `json:"reasons"`
	Price   float64   `json:"price"`
	Trend   TrendType `json:"trend"`
}
