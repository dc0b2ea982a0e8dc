// Package report renders a completed evaluation as Telegram-ready HTML:
// the signal, the decision path with observed values, a fixed set of key
// RSI readings, and an Eastern-time timestamp.
package report

import (
	"fmt"
	"strings"
	"time"

	"rsi-rotation/internal/indicator"
	"rsi-rotation/internal/markethours"
	"rsi-rotation/internal/model"
)

// keyReadings are the indicator values always shown at the bottom of the
// report, whatever path the traversal took.
var keyReadings = []indicator.Key{
	{Symbol: "QQQ", Window: 9},
	{Symbol: "SPY", Window: 9},
	{Symbol: "XLP", Window: 9},
	{Symbol: "VIXY", Window: 50},
}

// Format renders the report text. Pure function; values are rounded to one
// decimal place here and nowhere else.
func Format(label string, cache indicator.Cache, path []model.DecisionStep, now time.Time) string {
	var b strings.Builder

	b.WriteString("🎯 <b>TRADING SIGNAL</b>\n")
	b.WriteString("━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "%s <b>%s</b>\n\n", signalEmoji(label), label)

	b.WriteString("🔍 <b>DECISION PATH:</b>\n")
	for _, step := range path {
		mark := "❌"
		if step.Outcome {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s %s RSI(%d) %s %v → %t (%.1f)\n",
			mark, step.Symbol, step.Window, step.Operator, step.Threshold, step.Outcome, step.Value)
	}

	b.WriteString("\n📊 <b>KEY RSI VALUES:</b>\n")
	fmt.Fprintf(&b, "📈 QQQ: %s | SPY: %s\n", reading(cache, keyReadings[0]), reading(cache, keyReadings[1]))
	fmt.Fprintf(&b, "📉 XLP: %s | VIXY(50): %s\n", reading(cache, keyReadings[2]), reading(cache, keyReadings[3]))

	et := now.In(markethours.Eastern)
	fmt.Fprintf(&b, "\n⏰ %s", et.Format("2006-01-02 03:04 PM")+" ET")

	return b.String()
}

func reading(cache indicator.Cache, k indicator.Key) string {
	v, ok := cache.Get(k.Symbol, k.Window)
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

// signalEmoji classifies the label: defensive VIX rotations, aggressive
// leveraged buys, the LABD short, and the T-Bill cash position.
func signalEmoji(label string) string {
	switch {
	case strings.Contains(label, "VIX"):
		return "🛡️"
	case strings.Contains(label, "LABD"):
		return "📉"
	case strings.Contains(label, "BIL"):
		return "💵"
	case strings.Contains(label, "Buy"),
		strings.Contains(label, "SOXL"),
		strings.Contains(label, "FNGU"),
		strings.Contains(label, "TECL"),
		strings.Contains(label, "TQQQ"),
		strings.Contains(label, "UPRO"):
		return "🚀"
	default:
		return "🛡️"
	}
}
