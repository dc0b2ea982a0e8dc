package markethours

import "time"

// NYSE full-day holidays for 2026.
// Source: NYSE published holiday schedule. July 3 is the observed date
// for Independence Day (July 4 falls on a Saturday).
var nyseHolidays2026 = []struct {
	month time.Month
	day   int
}{
	{time.January, 1},   // New Year's Day
	{time.January, 19},  // Martin Luther King Jr. Day
	{time.February, 16}, // Washington's Birthday
	{time.April, 3},     // Good Friday
	{time.May, 25},      // Memorial Day
	{time.June, 19},     // Juneteenth
	{time.July, 3},      // Independence Day (observed)
	{time.September, 7}, // Labor Day
	{time.November, 26}, // Thanksgiving Day
	{time.December, 25}, // Christmas Day
}

// pre-compute for fast lookup
var holidaySet map[string]bool

func init() {
	holidaySet = make(map[string]bool, len(nyseHolidays2026))
	for _, h := range nyseHolidays2026 {
		key := time.Date(2026, h.month, h.day, 0, 0, 0, 0, Eastern).Format("2006-01-02")
		holidaySet[key] = true
	}
}

// IsHoliday returns true if t (interpreted in Eastern) is a full-day
// market holiday. Years without a loaded schedule report no holidays.
func IsHoliday(t time.Time) bool {
	return holidaySet[t.In(Eastern).Format("2006-01-02")]
}
