package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"rsi-rotation/config"
	"rsi-rotation/internal/decision"
	"rsi-rotation/internal/logger"
	"rsi-rotation/internal/marketdata"
	"rsi-rotation/internal/markethours"
	"rsi-rotation/internal/notification"
	"rsi-rotation/internal/runner"
	"rsi-rotation/internal/state"
)

// checkonce runs a single evaluation and exits: cron's entry point.
func main() {
	force := flag.Bool("force", false, "evaluate even when the market is closed")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	slogger := logger.Init("checkonce", slog.LevelInfo)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[checkonce] %v", err)
	}

	now := time.Now()
	if !*force && cfg.MarketHoursOnly && !markethours.IsMarketOpen(now) {
		log.Printf("[checkonce] %s, nothing to do (use -force to override)", markethours.StatusString(now))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("[checkonce] state backend init failed: %v", err)
	}

	graph, err := decision.Rotation()
	if err != nil {
		log.Fatalf("[checkonce] %v", err)
	}

	notifier := newNotifier(cfg)

	r := runner.New(graph, marketdata.NewPolygonProvider(cfg.PolygonAPIKey), store, runner.Options{
		Notifier:     notifier,
		Logger:       slogger,
		LookbackDays: cfg.LookbackDays,
	})

	result, err := r.Run(ctx)
	if err != nil {
		log.Printf("[checkonce] evaluation failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("signal: %s\nnotify: %t (%s)\ndelivered: %t\n",
		result.Signal, result.Notify, result.NotifyReason, result.Notified)
}

// newNotifier returns nil when no transport is configured; the runner
// then skips delivery and records notified=false.
func newNotifier(cfg *config.Config) notification.Notifier {
	if cfg.DryRun {
		return notification.NewLogNotifier()
	}
	var backends notification.Multi
	if cfg.TelegramEnabled() {
		backends = append(backends, notification.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID))
	}
	if cfg.WebhookURL != "" {
		backends = append(backends, notification.NewWebhookNotifier(cfg.WebhookURL))
	}
	if len(backends) == 0 {
		return nil
	}
	return backends
}

func newStore(ctx context.Context, cfg *config.Config) (state.Store, error) {
	switch cfg.StateBackend {
	case "sqlite":
		return state.NewSQLiteStore(cfg.SQLitePath)
	case "redis":
		return state.NewRedisStore(state.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	case "gcs":
		return state.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSObject)
	default:
		return state.NewFileStore(cfg.StatePath), nil
	}
}
