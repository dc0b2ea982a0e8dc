// Package policy decides whether a freshly computed signal is worth
// announcing, given the last persisted record.
package policy

import (
	"time"

	"rsi-rotation/internal/markethours"
	"rsi-rotation/internal/model"
)

// Notification reasons, in rule order.
const (
	ReasonFirstRun      = "first run ever"
	ReasonFirstOfDay    = "first check of trading day"
	ReasonSignalChanged = "signal changed"
	ReasonNoChange      = "no change"
)

// ShouldNotify applies the notification rules in order:
//
//  1. no prior record            → notify ("first run ever")
//  2. record from a previous day → notify ("first check of trading day")
//  3. label changed              → notify ("signal changed")
//  4. otherwise                  → skip   ("no change")
//
// "Today" is the calendar date of now in US Eastern, so the day boundary
// follows the trading region rather than UTC midnight.
func ShouldNotify(current string, last *model.SignalRecord, now time.Time) (bool, string) {
	if last == nil {
		return true, ReasonFirstRun
	}

	today := now.In(markethours.Eastern).Format(model.DateLayout)
	if last.Date != today {
		return true, ReasonFirstOfDay
	}

	if current != last.Signal {
		return true, ReasonSignalChanged
	}

	return false, ReasonNoChange
}
