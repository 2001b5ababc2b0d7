package marketdata

import (
	"time"

	"github.com/foliohq/folio/internal/models"
)

// Trailing-return windows in trading days.
const (
	offsetOneDay     = 1
	offsetOneWeek    = 5
	offsetOneMonth   = 21
	offsetThreeMonth = 63
	offsetSixMonth   = 126
	offsetOneYear    = 252
)

// computeReturns derives the trailing returns block from an ordered bar
// series. Windows the history cannot cover are left nil.
func computeReturns(bars []models.PriceBar) *models.ReturnsBlock {
	if len(bars) == 0 {
		return nil
	}

	latest := bars[len(bars)-1].Close
	out := &models.ReturnsBlock{
		OneDay:     trailingReturn(bars, latest, offsetOneDay),
		OneWeek:    trailingReturn(bars, latest, offsetOneWeek),
		OneMonth:   trailingReturn(bars, latest, offsetOneMonth),
		ThreeMonth: trailingReturn(bars, latest, offsetThreeMonth),
		SixMonth:   trailingReturn(bars, latest, offsetSixMonth),
		OneYear:    trailingReturn(bars, latest, offsetOneYear),
		YTD:        ytdReturn(bars, latest),
	}
	return out
}

// trailingReturn is the percentage change from the close offset bars
// back to the latest close.
func trailingReturn(bars []models.PriceBar, latest float64, offset int) *float64 {
	idx := len(bars) - 1 - offset
	if idx < 0 {
		return nil
	}
	base := bars[idx].Close
	if base <= 0 {
		return nil
	}
	pct := (latest - base) / base * 100
	return &pct
}

// ytdReturn is the percentage change from the last close of the prior
// calendar year (approximated by the first bar of the current year's
// predecessor when present).
func ytdReturn(bars []models.PriceBar, latest float64) *float64 {
	year := bars[len(bars)-1].Date.Year()

	// Walk back to the last bar of the previous year.
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Date.Year() < year {
			base := bars[i].Close
			if base <= 0 {
				return nil
			}
			pct := (latest - base) / base * 100
			return &pct
		}
	}

	// History starts inside the current year: use the earliest bar if it
	// is from a January session, otherwise the window is uncoverable.
	first := bars[0]
	if first.Date.Month() == time.January && first.Close > 0 {
		pct := (latest - first.Close) / first.Close * 100
		return &pct
	}
	return nil
}
