package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsi-rotation/internal/decision"
	"rsi-rotation/internal/marketdata"
	"rsi-rotation/internal/markethours"
	"rsi-rotation/internal/model"
	"rsi-rotation/internal/policy"
	"rsi-rotation/internal/state"
)

var fixedNow = time.Date(2026, time.March, 4, 10, 0, 0, 0, markethours.Eastern)

// fakeProvider serves one canned series per symbol, or a default series.
type fakeProvider struct {
	series  map[string][]float64
	deflt   []float64
	err     error
	fetched []string
}

func (p *fakeProvider) DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.fetched = append(p.fetched, symbol)
	if s, ok := p.series[symbol]; ok {
		return s, nil
	}
	return p.deflt, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) Send(ctx context.Context, text string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, text)
	return nil
}

type failingStore struct{}

func (failingStore) Load(ctx context.Context) (*model.SignalRecord, error) {
	return nil, fmt.Errorf("state: connection refused")
}
func (failingStore) Save(ctx context.Context, rec model.SignalRecord) error {
	return fmt.Errorf("state: connection refused")
}

// rising produces a monotonically increasing series: every RSI is 100.
func rising(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 100 + float64(i)
	}
	return s
}

func newTestRunner(t *testing.T, provider marketdata.Provider, st state.Store, notifier *fakeNotifier) *Runner {
	t.Helper()
	graph, err := decision.Rotation()
	require.NoError(t, err)

	opts := Options{Now: func() time.Time { return fixedNow }}
	if notifier != nil {
		opts.Notifier = notifier
	}
	return New(graph, provider, st, opts)
}

func TestRun_FirstRunNotifiesAndPersists(t *testing.T) {
	provider := &fakeProvider{deflt: rising(70)}
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	notifier := &fakeNotifier{}

	result, err := newTestRunner(t, provider, store, notifier).Run(context.Background())
	require.NoError(t, err)

	// All-rising series: every RSI is 100, QQQ and VIXY(50) both trip.
	assert.Equal(t, decision.LabelVIXGroup, result.Signal)
	assert.Len(t, result.Path, 2)
	assert.True(t, result.Notify)
	assert.Equal(t, policy.ReasonFirstRun, result.NotifyReason)
	assert.True(t, result.Notified)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], decision.LabelVIXGroup)

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, decision.LabelVIXGroup, rec.Signal)
	assert.Equal(t, "2026-03-04", rec.Date)
	assert.True(t, rec.Notified)

	// Exactly one fetch per graph symbol.
	assert.Len(t, provider.fetched, 16)
}

func TestRun_SecondRunSameDayStaysQuiet(t *testing.T) {
	provider := &fakeProvider{deflt: rising(70)}
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	notifier := &fakeNotifier{}
	r := newTestRunner(t, provider, store, notifier)

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Notify)
	assert.Equal(t, policy.ReasonNoChange, result.NotifyReason)
	assert.False(t, result.Notified)
	assert.Len(t, notifier.sent, 1) // only the first run delivered
}

func TestRun_InsufficientHistoryAbortsWholeRun(t *testing.T) {
	// One short symbol out of sixteen kills the run before evaluation.
	provider := &fakeProvider{
		deflt:  rising(70),
		series: map[string][]float64{"VIXY": rising(40)},
	}
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	_, err := newTestRunner(t, provider, store, nil).Run(context.Background())
	require.Error(t, err)
	var insufficientErr *marketdata.InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "VIXY", insufficientErr.Symbol)
	assert.Equal(t, 61, insufficientErr.Need)

	// Nothing persisted: no partial signal.
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestRun_ProviderErrorAborts(t *testing.T) {
	provider := &fakeProvider{err: errors.New("dial tcp: timeout")}
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	_, err := newTestRunner(t, provider, store, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestRun_DeliveryFailureDegrades(t *testing.T) {
	provider := &fakeProvider{deflt: rising(70)}
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	notifier := &fakeNotifier{err: errors.New("telegram: unexpected status 502")}

	result, err := newTestRunner(t, provider, store, notifier).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Notify)
	assert.False(t, result.Notified)

	// The record is still persisted, marked as not announced.
	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, rec.Notified)
}

func TestRun_NoTransportConfigured(t *testing.T) {
	provider := &fakeProvider{deflt: rising(70)}
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	result, err := newTestRunner(t, provider, store, nil).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Notify)
	assert.False(t, result.Notified)
}

func TestRun_BrokenStoreStillDecides(t *testing.T) {
	provider := &fakeProvider{deflt: rising(70)}
	notifier := &fakeNotifier{}

	result, err := newTestRunner(t, provider, failingStore{}, notifier).Run(context.Background())
	require.NoError(t, err)
	// Load failure forces the first-run path; save failure is swallowed.
	assert.Equal(t, policy.ReasonFirstRun, result.NotifyReason)
	assert.True(t, result.Notified)
}

func TestRun_OnResultHook(t *testing.T) {
	provider := &fakeProvider{deflt: rising(70)}
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	graph, err := decision.Rotation()
	require.NoError(t, err)

	var got []model.RunResult
	r := New(graph, provider, store, Options{
		Now:      func() time.Time { return fixedNow },
		OnResult: func(res model.RunResult) { got = append(got, res) },
	})

	_, err = r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, strings.Contains(got[0].Signal, "VIX"))
}
