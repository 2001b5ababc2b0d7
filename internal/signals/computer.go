package signals

import (
	"time"

	"github.com/foliohq/folio/internal/models"
)

// Computer derives a full indicator snapshot from a bar series.
type Computer struct{}

// NewComputer creates a new indicator computer
func NewComputer() *Computer {
	return &Computer{}
}

// Compute calculates all indicators from an ordered bar series. Any
// indicator whose required history is missing is left nil in the result.
func (c *Computer) Compute(bars []models.PriceBar) *models.TechnicalIndicators {
	out := &models.TechnicalIndicators{
		Trend:      Trend(bars),
		ComputedAt: time.Now(),
	}

	if v, ok := RSI(bars, 14); ok {
		out.RSI = &v
	}
	if v, ok := SMA(bars, 20); ok {
		out.SMA20 = &v
	}
	if v, ok := SMA(bars, 50); ok {
		out.SMA50 = &v
	}
	if v, ok := EMA(bars, 12); ok {
		out.EMA12 = &v
	}
	if v, ok := EMA(bars, 26); ok {
		out.EMA26 = &v
	}
	if m, ok := MACD(bars); ok {
		out.MACD = &m
	}
	if b, ok := Bollinger(bars, 20); ok {
		out.Bollinger = &b
	}
	if v, ok := Support(bars); ok {
		out.Support = &v
	}
	if v, ok := Resistance(bars); ok {
		out.Resistance = &v
	}

	return out
}
