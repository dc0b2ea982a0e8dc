// Package indicator computes SMA-based RSI values over daily closing
// prices and caches them per (symbol, window) pair for one evaluation run.
package indicator

import (
	"math"

	"github.com/montanaflynn/stats"
)

// RSI calculates the Relative Strength Index using the simple-moving-average
// method (not Wilder's exponential smoothing):
//
//	diff  = close[i] - close[i-1]
//	up    = diff if diff > 0 else 0
//	down  = |diff| if diff < 0 else 0
//	RS    = mean(last window ups) / mean(last window downs)
//	RSI   = 100 - 100/(1+RS)
//
// An all-gain window (avgDown == 0) is defined as RSI 100. Returns ok=false
// when the series has fewer than window+1 observations. Pure function; no
// rounding is applied here; rounding happens only in the rendered report.
func RSI(closes []float64, window int) (float64, bool) {
	if window < 1 || len(closes) < window+1 {
		return 0, false
	}

	ups := make([]float64, 0, window)
	downs := make([]float64, 0, window)
	for i := len(closes) - window; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		switch {
		case diff > 0:
			ups = append(ups, diff)
			downs = append(downs, 0)
		case diff < 0:
			ups = append(ups, 0)
			downs = append(downs, math.Abs(diff))
		default:
			ups = append(ups, 0)
			downs = append(downs, 0)
		}
	}

	avgUp, err := stats.Mean(ups)
	if err != nil {
		return 0, false
	}
	avgDown, err := stats.Mean(downs)
	if err != nil {
		return 0, false
	}

	if avgDown == 0 {
		return 100.0, true
	}

	rs := avgUp / avgDown
	return 100.0 - (100.0 / (1.0 + rs)), true
}
