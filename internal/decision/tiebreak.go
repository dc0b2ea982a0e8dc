package decision

import (
	"fmt"
	"sort"

	"rsi-rotation/internal/indicator"
)

// ResolveBottomTwo ranks the candidate symbols by their cached RSI at the
// given window and composes a buy label from the two lowest. The sort is
// stable: candidates with equal RSI keep their original order, so the
// result is reproducible across runs.
func ResolveBottomTwo(cache indicator.Cache, candidates []string, window int) (string, error) {
	if len(candidates) < 2 {
		return "", fmt.Errorf("tie-break needs at least 2 candidates, have %d", len(candidates))
	}

	type ranked struct {
		symbol string
		value  float64
	}
	values := make([]ranked, 0, len(candidates))
	for _, sym := range candidates {
		v, ok := cache.Get(sym, window)
		if !ok {
			return "", fmt.Errorf("tie-break: no cached value for %s RSI(%d)", sym, window)
		}
		values = append(values, ranked{symbol: sym, value: v})
	}

	sort.SliceStable(values, func(i, j int) bool {
		return values[i].value < values[j].value
	})

	return fmt.Sprintf("Buy %s and %s (Bottom 2 RSIs: %.1f, %.1f)",
		values[0].symbol, values[1].symbol, values[0].value, values[1].value), nil
}
