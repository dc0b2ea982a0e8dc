// Package runner sequences one full evaluation: fetch price history,
// compute the indicator cache, walk the decision graph, decide whether
// to notify, deliver the report, and persist the new signal record.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"rsi-rotation/internal/decision"
	"rsi-rotation/internal/indicator"
	"rsi-rotation/internal/logger"
	"rsi-rotation/internal/marketdata"
	"rsi-rotation/internal/markethours"
	"rsi-rotation/internal/metrics"
	"rsi-rotation/internal/model"
	"rsi-rotation/internal/notification"
	"rsi-rotation/internal/policy"
	"rsi-rotation/internal/report"
	"rsi-rotation/internal/state"
)

// defaultLookbackDays comfortably covers the largest 60-day window plus
// weekends and holidays.
const defaultLookbackDays = 120

// Options configures the optional collaborators of a Runner.
type Options struct {
	Notifier     notification.Notifier // nil disables delivery
	Metrics      *metrics.Metrics      // nil disables instrumentation
	OnResult     func(model.RunResult) // called after each completed run
	Now          func() time.Time      // defaults to time.Now
	Logger       *slog.Logger          // defaults to slog.Default()
	LookbackDays int                   // defaults to defaultLookbackDays
}

// Runner orchestrates evaluations. A single Runner is not meant for
// concurrent Run calls; the scheduler invokes it strictly sequentially.
type Runner struct {
	graph    *decision.Graph
	provider marketdata.Provider
	store    state.Store
	opts     Options
}

// New wires a Runner. Graph, provider, and store are required; everything
// in opts is optional.
func New(graph *decision.Graph, provider marketdata.Provider, store state.Store, opts Options) *Runner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = defaultLookbackDays
	}
	return &Runner{graph: graph, provider: provider, store: store, opts: opts}
}

// Run executes one evaluation to completion. Only data and configuration
// failures abort the run; transport and state I/O failures degrade to
// best-effort behavior and the computed decision is still returned.
func (r *Runner) Run(ctx context.Context) (*model.RunResult, error) {
	now := r.opts.Now()
	start := time.Now()
	ctx = logger.WithRunID(ctx, logger.NewRunID(now))
	log := r.opts.Logger.With("run_id", logger.RunID(ctx))

	if r.opts.Metrics != nil {
		r.opts.Metrics.RunsTotal.Inc()
		defer func() {
			r.opts.Metrics.RunDuration.Observe(time.Since(start).Seconds())
		}()
	}

	result, err := r.run(ctx, now, log)
	if err != nil {
		if r.opts.Metrics != nil {
			r.opts.Metrics.RunFailuresTotal.Inc()
		}
		return nil, err
	}

	if r.opts.OnResult != nil {
		r.opts.OnResult(*result)
	}
	return result, nil
}

func (r *Runner) run(ctx context.Context, now time.Time, log *slog.Logger) (*model.RunResult, error) {
	need := r.graph.MaxWindow() + 1
	from := now.AddDate(0, 0, -r.opts.LookbackDays)

	series := make(map[string][]float64)
	for _, symbol := range r.graph.Symbols() {
		closes, err := r.provider.DailyCloses(ctx, symbol, from, now)
		if err != nil {
			return nil, fmt.Errorf("runner: fetch %s: %w", symbol, err)
		}
		if len(closes) < need {
			return nil, &marketdata.InsufficientDataError{Symbol: symbol, Have: len(closes), Need: need}
		}
		series[symbol] = closes
	}
	log.Info("price history acquired", "symbols", len(series), "min_observations", need)

	cache, err := indicator.Build(series, r.graph.RequiredKeys())
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	if r.opts.Metrics != nil {
		for k, v := range cache {
			r.opts.Metrics.RSIValue.WithLabelValues(k.Symbol, strconv.Itoa(k.Window)).Set(v)
		}
	}

	label, path, err := r.graph.Evaluate(cache)
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	log.Info("signal evaluated", "signal", label, "steps", len(path))

	last, err := r.store.Load(ctx)
	if err != nil && !errors.Is(err, state.ErrNotFound) {
		// A broken store must not block the decision: treat as first run.
		log.Warn("state load failed, treating as first run", "error", err)
		if r.opts.Metrics != nil {
			r.opts.Metrics.StateIOFailures.Inc()
		}
		last = nil
	}

	notify, reason := policy.ShouldNotify(label, last, now)
	log.Info("notification decision", "notify", notify, "reason", reason)
	if reason == policy.ReasonSignalChanged && r.opts.Metrics != nil {
		r.opts.Metrics.SignalChanges.Inc()
	}

	notified := false
	switch {
	case !notify:
	case r.opts.Notifier == nil:
		log.Info("notification transport not configured, skipping delivery")
	default:
		text := report.Format(label, cache, path, now)
		if err := r.opts.Notifier.Send(ctx, text); err != nil {
			log.Warn("notification delivery failed", "error", err)
			if r.opts.Metrics != nil {
				r.opts.Metrics.NotificationFailures.Inc()
			}
		} else {
			notified = true
			if r.opts.Metrics != nil {
				r.opts.Metrics.NotificationsSent.Inc()
			}
		}
	}

	rec := model.NewSignalRecord(label, notified, now, markethours.Eastern)
	if err := r.store.Save(ctx, rec); err != nil {
		// Best-effort: the decision itself succeeded.
		log.Warn("state save failed", "error", err)
		if r.opts.Metrics != nil {
			r.opts.Metrics.StateIOFailures.Inc()
		}
	}

	return &model.RunResult{
		Signal:       label,
		Path:         path,
		Notify:       notify,
		NotifyReason: reason,
		Notified:     notified,
		EvaluatedAt:  now,
	}, nil
}
