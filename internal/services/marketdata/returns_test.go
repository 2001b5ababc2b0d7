package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/models"
)

// barsFrom builds consecutive daily bars starting at start.
func barsFrom(start time.Time, closes []float64) []models.PriceBar {
	bars := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func TestComputeReturnsWindows(t *testing.T) {
	// 300 ascending closes 1..300, latest 300.
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	bars := barsFrom(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), closes)

	out := computeReturns(bars)
	require.NotNil(t, out)

	require.NotNil(t, out.OneDay)
	assert.InDelta(t, (300.0-299.0)/299.0*100, *out.OneDay, 0.0001)

	require.NotNil(t, out.OneWeek)
	assert.InDelta(t, (300.0-295.0)/295.0*100, *out.OneWeek, 0.0001)

	require.NotNil(t, out.OneMonth)
	assert.InDelta(t, (300.0-279.0)/279.0*100, *out.OneMonth, 0.0001)

	require.NotNil(t, out.OneYear)
	// 252 bars back from index 299 is index 47, close 48.
	assert.InDelta(t, (300.0-48.0)/48.0*100, *out.OneYear, 0.0001)
}

func TestComputeReturnsShortHistory(t *testing.T) {
	bars := barsFrom(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), []float64{10, 11, 12})

	out := computeReturns(bars)
	require.NotNil(t, out)

	require.NotNil(t, out.OneDay)
	assert.Nil(t, out.OneMonth)
	assert.Nil(t, out.ThreeMonth)
	assert.Nil(t, out.SixMonth)
	assert.Nil(t, out.OneYear)
}

func TestComputeReturnsEmpty(t *testing.T) {
	assert.Nil(t, computeReturns(nil))
}

func TestYTDReturnPriorYearBase(t *testing.T) {
	// Five December bars then five January bars: YTD measures from the
	// last bar of the prior year.
	bars := barsFrom(time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC),
		[]float64{90, 92, 94, 96, 100, 102, 104, 106, 108, 110})

	out := computeReturns(bars)
	require.NotNil(t, out)
	require.NotNil(t, out.YTD)
	// Last 2024 close is 100 (2024-12-31), latest is 110.
	assert.InDelta(t, 10.0, *out.YTD, 0.0001)
}

func TestYTDReturnJanuaryStartFallback(t *testing.T) {
	bars := barsFrom(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		[]float64{100, 105, 110})

	out := computeReturns(bars)
	require.NotNil(t, out)
	require.NotNil(t, out.YTD)
	assert.InDelta(t, 10.0, *out.YTD, 0.0001)
}

func TestYTDReturnUncoverable(t *testing.T) {
	// History starts mid-year: no prior-year close and no January bar.
	bars := barsFrom(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		[]float64{100, 105, 110})

	out := computeReturns(bars)
	require.NotNil(t, out)
	assert.Nil(t, out.YTD)
}
