package markethours

import (
	"testing"
	"time"
)

func TestIsMarketOpen_RegularSession(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"weekday midday", time.Date(2026, time.March, 4, 12, 0, 0, 0, Eastern), true},
		{"weekday at open", time.Date(2026, time.March, 4, 9, 30, 0, 0, Eastern), true},
		{"weekday before open", time.Date(2026, time.March, 4, 9, 29, 0, 0, Eastern), false},
		{"weekday after close", time.Date(2026, time.March, 4, 16, 1, 0, 0, Eastern), false},
		{"saturday", time.Date(2026, time.March, 7, 12, 0, 0, 0, Eastern), false},
		{"sunday", time.Date(2026, time.March, 8, 12, 0, 0, 0, Eastern), false},
		{"christmas", time.Date(2026, time.December, 25, 12, 0, 0, 0, Eastern), false},
		{"thanksgiving", time.Date(2026, time.November, 26, 12, 0, 0, 0, Eastern), false},
	}
	for _, tc := range cases {
		if got := IsMarketOpen(tc.t); got != tc.want {
			t.Errorf("%s: IsMarketOpen=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsMarketOpen_UTCConversion(t *testing.T) {
	// 2026-03-04 15:00 UTC is 10:00 ET (EST, UTC-5): market open.
	utc := time.Date(2026, time.March, 4, 15, 0, 0, 0, time.UTC)
	if !IsMarketOpen(utc) {
		t.Error("expected market open for 10:00 ET given as UTC")
	}
	// 2026-03-04 03:00 UTC is 22:00 ET the previous evening: closed.
	utc = time.Date(2026, time.March, 4, 3, 0, 0, 0, time.UTC)
	if IsMarketOpen(utc) {
		t.Error("expected market closed for 22:00 ET given as UTC")
	}
}

func TestIsTradingDay(t *testing.T) {
	if IsTradingDay(time.Date(2026, time.July, 3, 12, 0, 0, 0, Eastern)) {
		t.Error("observed Independence Day should not be a trading day")
	}
	if !IsTradingDay(time.Date(2026, time.July, 6, 12, 0, 0, 0, Eastern)) {
		t.Error("the Monday after should be a trading day")
	}
}
