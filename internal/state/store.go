// Package state persists the single most-recent SignalRecord between
// runs. The backing store is swappable behind one contract: a local JSON
// file, a SQLite table, a Redis key, or a GCS object. The backend is an
// explicit startup choice, never an environment sniff.
package state

import (
	"context"
	"errors"

	"rsi-rotation/internal/model"
)

// ErrNotFound signals that no record has ever been saved. Callers treat
// it as "never run before", not as a failure.
var ErrNotFound = errors.New("state: no signal record")

// Store loads and saves the one persisted SignalRecord. Save overwrites;
// there is never more than one record.
type Store interface {
	Load(ctx context.Context) (*model.SignalRecord, error)
	Save(ctx context.Context, rec model.SignalRecord) error
}
