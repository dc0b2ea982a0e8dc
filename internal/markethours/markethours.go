// Package markethours provides US equity trading-calendar helpers in the
// Eastern timezone. All "day boundary" semantics in the service derive
// from this location, never from UTC midnight.
package markethours

import (
	"fmt"
	"time"
)

// Eastern is the US trading-region timezone. DST-aware when tzdata is
// available; the fixed EST fallback only applies on systems with no zone
// database and no embedded tzdata.
var Eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("EST", -5*3600)
	}
	return loc
}

// Regular NYSE session, Eastern time.
const (
	OpenHour    = 9
	OpenMinute  = 30
	CloseHour   = 16
	CloseMinute = 0
)

// IsMarketOpen returns true if t falls within the regular NYSE session
// (9:30 AM – 4:00 PM ET, Mon–Fri, excluding holidays).
func IsMarketOpen(t time.Time) bool {
	et := t.In(Eastern)
	wd := et.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	if IsHoliday(et) {
		return false
	}
	hm := et.Hour()*60 + et.Minute()
	return hm >= OpenHour*60+OpenMinute && hm <= CloseHour*60+CloseMinute
}

// IsTradingDay returns true if t is a weekday and not a holiday.
func IsTradingDay(t time.Time) bool {
	et := t.In(Eastern)
	wd := et.Weekday()
	return wd >= time.Monday && wd <= time.Friday && !IsHoliday(et)
}

// StatusString returns a human-readable market status for logs.
func StatusString(t time.Time) string {
	et := t.In(Eastern)
	if IsMarketOpen(t) {
		return fmt.Sprintf("market open (%s ET)", et.Format("15:04"))
	}
	return fmt.Sprintf("market closed (%s %s ET)", et.Weekday().String()[:3], et.Format("15:04"))
}
