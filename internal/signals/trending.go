package signals

// Trending score component weights. Volume spikes lead, raw momentum
// second, RSI extremity last.
const (
	weightVolume   = 0.40
	weightMomentum = 0.35
	weightRSI      = 0.25
)

// TrendingInputs are the per-security components of the trending score.
// Nil pointers mean the component is unavailable and contributes zero.
type TrendingInputs struct {
	VolumeRatio    *float64 // current volume / trailing average
	MonthChangePct *float64 // ~1 month percentage move
	RSI            *float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// TrendingScore computes a deterministic 0..1 trending score as a
// weighted sum of volume spike, monthly momentum, and RSI extremity,
// returning the reason tags that contributed.
func TrendingScore(in TrendingInputs) (float64, []string) {
	var reasons []string

	volScore := 0.0
	if in.VolumeRatio != nil {
		ratio := *in.VolumeRatio
		volScore = clamp01((ratio - 1) / 2)
		if ratio >= 2.0 {
			reasons = append(reasons, "volume_spike")
		}
	}

	momScore := 0.0
	if in.MonthChangePct != nil {
		ret := *in.MonthChangePct
		momScore = clamp01(0.5 + ret/20)
		if ret >= 10 {
			reasons = append(reasons, "strong_momentum")
		} else if ret <= -10 {
			reasons = append(reasons, "sharp_decline")
		}
	}

	rsiScore := 0.0
	if in.RSI != nil {
		rsi := *in.RSI
		ext := (rsi - 50) / 50
		rsiScore = clamp01(ext * ext)
		if rsi >= 70 {
			reasons = append(reasons, "rsi_overbought")
		} else if rsi <= 30 {
			reasons = append(reasons, "rsi_oversold")
		}
	}

	score := weightVolume*volScore + weightMomentum*momScore + weightRSI*rsiScore
	return score, reasons
}
