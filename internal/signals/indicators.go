// Package signals provides technical indicator calculations over an
// ordered (oldest to newest) bar series. All functions are pure: no I/O,
// no side effects. Insufficient history is reported via the boolean
// return, never as an error.
package signals

import (
	"math"

	"github.com/foliohq/folio/internal/models"
)

// SupportResistanceWindow is the fixed lookback for support/resistance.
const SupportResistanceWindow = 30

// SMA calculates the Simple Moving Average of the last period closes.
func SMA(bars []models.PriceBar, period int) (float64, bool) {
	if period <= 0 || len(bars) < period {
		return 0, false
	}

	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		sum += bars[i].Close
	}
	return sum / float64(period), true
}

// EMA calculates the Exponential Moving Average: seeded with the SMA of
// the earliest period bars, then smoothed forward over the remainder.
func EMA(bars []models.PriceBar, period int) (float64, bool) {
	series := emaSeries(bars, period)
	if series == nil {
		return 0, false
	}
	return series[len(series)-1], true
}

// emaSeries walks the standard EMA recurrence forward and returns the
// value at every bar index from period-1 onward (nil if too short).
// Entries before period-1 are NaN.
func emaSeries(bars []models.PriceBar, period int) []float64 {
	if period <= 0 || len(bars) < period {
		return nil
	}

	series := make([]float64, len(bars))
	for i := 0; i < period-1; i++ {
		series[i] = math.NaN()
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += bars[i].Close
	}
	seed /= float64(period)
	series[period-1] = seed

	k := 2.0 / float64(period+1)
	ema := seed
	for i := period; i < len(bars); i++ {
		ema = bars[i].Close*k + ema*(1-k)
		series[i] = ema
	}
	return series
}

// RSI calculates Wilder's Relative Strength Index. Requires at least
// period+1 bars. When the average loss is zero, RSI is 100 by definition.
func RSI(bars []models.PriceBar, period int) (float64, bool) {
	if period <= 0 || len(bars) < period+1 {
		return 0, false
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing over the remaining deltas
	for i := period + 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, true
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), true
}

// MACD calculates the MACD line (ema12 - ema26) and, history permitting,
// its 9-period signal EMA and histogram. The signal line needs 34 bars;
// with fewer, Signal and Histogram are left at zero while Value is still
// reported.
func MACD(bars []models.PriceBar) (models.MACDIndicator, bool) {
	const (
		fastPeriod   = 12
		slowPeriod   = 26
		signalPeriod = 9
	)

	e12 := emaSeries(bars, fastPeriod)
	e26 := emaSeries(bars, slowPeriod)
	if e26 == nil {
		return models.MACDIndicator{}, false
	}

	// MACD line series, defined from index slowPeriod-1 onward
	line := make([]float64, 0, len(bars)-slowPeriod+1)
	for i := slowPeriod - 1; i < len(bars); i++ {
		line = append(line, e12[i]-e26[i])
	}

	out := models.MACDIndicator{Value: line[len(line)-1]}

	if len(line) >= signalPeriod {
		seed := 0.0
		for i := 0; i < signalPeriod; i++ {
			seed += line[i]
		}
		signal := seed / float64(signalPeriod)
		k := 2.0 / float64(signalPeriod+1)
		for i := signalPeriod; i < len(line); i++ {
			signal = line[i]*k + signal*(1-k)
		}
		out.Signal = signal
		out.Histogram = out.Value - signal
	}

	return out, true
}

// Bollinger calculates 20-period Bollinger Bands: middle = SMA, bands at
// two population standard deviations.
func Bollinger(bars []models.PriceBar, period int) (models.BollingerBands, bool) {
	middle, ok := SMA(bars, period)
	if !ok {
		return models.BollingerBands{}, false
	}

	variance := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		d := bars[i].Close - middle
		variance += d * d
	}
	variance /= float64(period)
	halfWidth := 2 * math.Sqrt(variance)

	return models.BollingerBands{
		Upper:  middle + halfWidth,
		Middle: middle,
		Lower:  middle - halfWidth,
	}, true
}

// Support returns the minimum low over the most recent 30 bars.
func Support(bars []models.PriceBar) (float64, bool) {
	if len(bars) == 0 {
		return 0, false
	}

	start := len(bars) - SupportResistanceWindow
	if start < 0 {
		start = 0
	}
	low := math.MaxFloat64
	for i := start; i < len(bars); i++ {
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return low, true
}

// Resistance returns the maximum high over the most recent 30 bars.
func Resistance(bars []models.PriceBar) (float64, bool) {
	if len(bars) == 0 {
		return 0, false
	}

	start := len(bars) - SupportResistanceWindow
	if start < 0 {
		start = 0
	}
	high := 0.0
	for i := start; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
	}
	return high, true
}

// Trend classifies the series: Bullish when the latest close sits above
// sma20 which sits above sma50, Bearish for the mirror, else Sideways.
// Fewer than 20 bars is Unknown. With 20-49 bars sma50 is undefined and
// neither ordering can hold, so the result is Sideways.
func Trend(bars []models.PriceBar) models.TrendType {
	if len(bars) < 20 {
		return models.TrendUnknown
	}

	sma20, _ := SMA(bars, 20)
	sma50, ok50 := SMA(bars, 50)
	close := bars[len(bars)-1].Close

	if ok50 {
		if close > sma20 && sma20 > sma50 {
			return models.TrendBullish
		}
		if close < sma20 && sma20 < sma50 {
			return models.TrendBearish
		}
	}
	return models.TrendSideways
}

// AverageVolume calculates average volume over the last period bars.
func AverageVolume(bars []models.PriceBar, period int) (int64, bool) {
	if period <= 0 || len(bars) < period {
		return 0, false
	}

	var sum int64
	for i := len(bars) - period; i < len(bars); i++ {
		sum += bars[i].Volume
	}
	return sum / int64(period), true
}
