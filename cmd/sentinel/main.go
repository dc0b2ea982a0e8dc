package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rsi-rotation/config"
	"rsi-rotation/internal/api"
	"rsi-rotation/internal/decision"
	"rsi-rotation/internal/gateway"
	"rsi-rotation/internal/logger"
	"rsi-rotation/internal/marketdata"
	"rsi-rotation/internal/markethours"
	"rsi-rotation/internal/metrics"
	"rsi-rotation/internal/model"
	"rsi-rotation/internal/notification"
	"rsi-rotation/internal/runner"
	"rsi-rotation/internal/state"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	slogger := logger.Init("sentinel", slog.LevelInfo)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[sentinel] %v", err)
	}
	log.Printf("[sentinel] state backend: %s, interval: %s, market-hours gate: %t",
		cfg.StateBackend, cfg.CheckInterval, cfg.MarketHoursOnly)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("[sentinel] state backend init failed: %v", err)
	}

	graph, err := decision.Rotation()
	if err != nil {
		log.Fatalf("[sentinel] %v", err)
	}

	notifier := newNotifier(cfg)

	hub := gateway.NewHub()
	r := runner.New(graph, marketdata.NewPolygonProvider(cfg.PolygonAPIKey), store, runner.Options{
		Notifier:     notifier,
		Metrics:      metrics.New(),
		Logger:       slogger,
		LookbackDays: cfg.LookbackDays,
		OnResult:     func(res model.RunResult) { hub.Publish(res) },
	})

	srv := &api.Server{Runner: r, Store: store, Hub: hub}
	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: srv.NewRouter()}
	go func() {
		log.Printf("[sentinel] http listening on %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[sentinel] http server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[sentinel] shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		httpSrv.Shutdown(shutdownCtx)
		cancel()
	}()

	schedule(ctx, cfg, srv)
	log.Println("[sentinel] stopped")
}

// schedule evaluates immediately and then on every tick, skipping ticks
// outside NYSE hours when the gate is on.
func schedule(ctx context.Context, cfg *config.Config, srv *api.Server) {
	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	evaluate(ctx, cfg, srv)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evaluate(ctx, cfg, srv)
		}
	}
}

func evaluate(ctx context.Context, cfg *config.Config, srv *api.Server) {
	now := time.Now()
	if cfg.MarketHoursOnly && !markethours.IsMarketOpen(now) {
		log.Printf("[sentinel] skipping tick: %s", markethours.StatusString(now))
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	result, err := srv.Trigger(runCtx)
	if err != nil {
		log.Printf("[sentinel] evaluation failed: %v", err)
		return
	}
	log.Printf("[sentinel] signal: %s (notify=%t, %s)", result.Signal, result.Notify, result.NotifyReason)
}

// newNotifier returns nil when no transport is configured; the runner
// then skips delivery and records notified=false.
func newNotifier(cfg *config.Config) notification.Notifier {
	if cfg.DryRun {
		log.Println("[sentinel] dry run: logging notifications instead of delivering")
		return notification.NewLogNotifier()
	}
	var backends notification.Multi
	if cfg.TelegramEnabled() {
		backends = append(backends, notification.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID))
		log.Println("[sentinel] telegram delivery enabled")
	}
	if cfg.WebhookURL != "" {
		backends = append(backends, notification.NewWebhookNotifier(cfg.WebhookURL))
		log.Printf("[sentinel] webhook delivery enabled: %s", cfg.WebhookURL)
	}
	if len(backends) == 0 {
		log.Println("[sentinel] no transport configured")
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
