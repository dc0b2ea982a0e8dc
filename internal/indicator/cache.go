package indicator

import "fmt"

// Key identifies one computed indicator: a symbol plus a lookback window.
type Key struct {
	Symbol string
	Window int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/RSI(%d)", k.Symbol, k.Window)
}

// Cache maps indicator keys to computed RSI values. It is populated once
// per run by Build and read-only thereafter.
type Cache map[Key]float64

// Get returns the cached value for (symbol, window). The second return
// value reports whether the key was computed; callers must not treat a
// miss as zero.
func (c Cache) Get(symbol string, window int) (float64, bool) {
	v, ok := c[Key{Symbol: symbol, Window: window}]
	return v, ok
}

// Build computes RSI for every required key from the supplied close-price
// series. It fails if any series is absent or too short for its window, so
// an evaluation never starts with a partially populated cache.
func Build(series map[string][]float64, keys []Key) (Cache, error) {
	cache := make(Cache, len(keys))
	for _, k := range keys {
		closes, ok := series[k.Symbol]
		if !ok {
			return nil, fmt.Errorf("indicator: no price series for %s", k.Symbol)
		}
		v, ok := RSI(closes, k.Window)
		if !ok {
			return nil, fmt.Errorf("indicator: %s needs %d observations, have %d",
				k, k.Window+1, len(closes))
		}
		cache[k] = v
	}
	return cache, nil
}
