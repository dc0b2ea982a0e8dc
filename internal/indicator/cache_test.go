package indicator

import "testing"

func risingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

func TestBuild_PopulatesEveryKey(t *testing.T) {
	series := map[string][]float64{
		"QQQ":  risingCloses(70),
		"VIXY": risingCloses(70),
	}
	keys := []Key{
		{Symbol: "QQQ", Window: 9},
		{Symbol: "VIXY", Window: 50},
		{Symbol: "VIXY", Window: 60},
	}

	cache, err := Build(series, keys)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(cache) != len(keys) {
		t.Fatalf("expected %d entries, got %d", len(keys), len(cache))
	}
	for _, k := range keys {
		if _, ok := cache.Get(k.Symbol, k.Window); !ok {
			t.Errorf("missing entry for %s", k)
		}
	}
}

func TestBuild_MissingSeries(t *testing.T) {
	series := map[string][]float64{"QQQ": risingCloses(70)}
	_, err := Build(series, []Key{{Symbol: "SPY", Window: 9}})
	if err == nil {
		t.Fatal("expected error for missing series")
	}
}

func TestBuild_ShortSeries(t *testing.T) {
	series := map[string][]float64{"VIXY": risingCloses(50)}
	_, err := Build(series, []Key{{Symbol: "VIXY", Window: 60}})
	if err == nil {
		t.Fatal("expected error for series shorter than window+1")
	}
}

func TestCache_MissIsExplicit(t *testing.T) {
	cache := Cache{{Symbol: "QQQ", Window: 9}: 81.5}
	if _, ok := cache.Get("QQQ", 14); ok {
		t.Error("expected ok=false for uncomputed window")
	}
	v, ok := cache.Get("QQQ", 9)
	if !ok || v != 81.5 {
		t.Errorf("expected (81.5, true), got (%v, %v)", v, ok)
	}
}
