// Package metrics exposes Prometheus instrumentation for the signal
// service: run outcomes, notification delivery, and the latest RSI
// readings per instrument.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the signal service.
type Metrics struct {
	RunsTotal            prometheus.Counter
	RunFailuresTotal     prometheus.Counter
	RunDuration          prometheus.Histogram
	NotificationsSent    prometheus.Counter
	NotificationFailures prometheus.Counter
	StateIOFailures      prometheus.Counter
	SignalChanges        prometheus.Counter
	RSIValue             *prometheus.GaugeVec // labels: symbol, window
}

// New registers and returns all metrics.
func New() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_runs_total",
			Help: "Total evaluation runs attempted",
		}),
		RunFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_run_failures_total",
			Help: "Runs aborted by data or configuration failures",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_run_duration_seconds",
			Help:    "Wall time of one full evaluation run",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_notifications_sent_total",
			Help: "Reports successfully delivered to the transport",
		}),
		NotificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_notification_failures_total",
			Help: "Report deliveries that failed (run still completes)",
		}),
		StateIOFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_state_io_failures_total",
			Help: "Signal record load/save failures (treated as best-effort)",
		}),
		SignalChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_signal_changes_total",
			Help: "Runs whose label differed from the persisted record",
		}),
		RSIValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sentinel_rsi_value",
			Help: "Most recently computed RSI per (symbol, window)",
		}, []string{"symbol", "window"}),
	}

	prometheus.MustRegister(
		m.RunsTotal,
		m.RunFailuresTotal,
		m.RunDuration,
		m.NotificationsSent,
		m.NotificationFailures,
		m.StateIOFailures,
		m.SignalChanges,
		m.RSIValue,
	)

	return m
}
