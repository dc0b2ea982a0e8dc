// Package marketdata supplies daily closing-price history for the
// instruments the decision graph reads.
package marketdata

import (
	"context"
	"fmt"
	"time"
)

// Provider fetches chronological daily closes for one symbol over an
// inclusive date range.
type Provider interface {
	DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error)
}

// InsufficientDataError reports that a symbol's history is too short for
// the largest lookback window. It aborts the whole run: a signal must
// never be computed from partial data.
type InsufficientDataError struct {
	Symbol string
	Have   int
	Need   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("marketdata: %s: %d observations, need at least %d", e.Symbol, e.Have, e.Need)
}
