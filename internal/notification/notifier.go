// Package notification delivers signal reports to external channels
// (Telegram, webhooks). Delivery is best-effort: a failed send never
// fails the run that produced the report.
package notification

import (
	"context"
	"errors"
	"log"
)

// Notifier is the interface for all notification backends.
type Notifier interface {
	// Send delivers a pre-rendered report. Returns error if delivery fails.
	Send(ctx context.Context, text string) error
}

// LogNotifier logs reports instead of delivering them (useful for
// development and dry runs).
type LogNotifier struct{}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, text string) error {
	log.Printf("[notify] %s", text)
	return nil
}

// Multi fans one report out to several backends. Every backend is
// attempted; the combined error reports which ones failed.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
