// Package model holds the shared data types of the signal service:
// the persisted signal record, decision-path steps, and run results.
package model

import (
	"encoding/json"
	"time"
)

// Date and timestamp layouts used in the persisted record. Both are
// rendered in the trading-region timezone (US Eastern), never UTC.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// SignalRecord is the single persisted fact of what was last decided
// and whether it was announced. Exactly one record exists in storage;
// each run overwrites it.
type SignalRecord struct {
	Signal    string `json:"signal"`
	Date      string `json:"date"`      // YYYY-MM-DD, US Eastern calendar date
	Timestamp string `json:"timestamp"` // YYYY-MM-DD HH:MM:SS, US Eastern
	Notified  bool   `json:"notified"`
}

// NewSignalRecord builds a record for the given label at the given instant,
// converting to the supplied trading-region location.
func NewSignalRecord(signal string, notified bool, now time.Time, loc *time.Location) SignalRecord {
	local := now.In(loc)
	return SignalRecord{
		Signal:    signal,
		Date:      local.Format(DateLayout),
		Timestamp: local.Format(TimestampLayout),
		Notified:  notified,
	}
}

// JSON returns the JSON-encoded record.
func (r *SignalRecord) JSON() []byte {
	b, _ := json.MarshalIndent(r, "", "  ")
	return b
}

// DecisionStep records one evaluated node during a graph traversal.
type DecisionStep struct {
	Symbol    string  `json:"symbol"`
	Window    int     `json:"window"`
	Operator  string  `json:"operator"` // ">" or "<"
	Threshold float64 `json:"threshold"`
	Outcome   bool    `json:"outcome"`
	Value     float64 `json:"value"` // observed RSI at evaluation time
}

// RunResult is the outcome of one full orchestrated evaluation.
type RunResult struct {
	Signal       string         `json:"signal"`
	Path         []DecisionStep `json:"path"`
	Notify       bool           `json:"notify"`
	NotifyReason string         `json:"notify_reason"`
	Notified     bool           `json:"notified"`
	EvaluatedAt  time.Time      `json:"evaluated_at"`
}
