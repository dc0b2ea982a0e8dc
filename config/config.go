package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Market data
	PolygonAPIKey string

	// Telegram delivery (both empty disables delivery)
	TelegramBotToken string
	TelegramChatID   string

	// Optional generic webhook, delivered alongside Telegram
	WebhookURL string

	// DryRun logs reports instead of delivering them
	DryRun bool

	// State backend: "file", "sqlite", "redis", or "gcs"
	StateBackend  string
	StatePath     string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	GCSBucket     string
	GCSObject     string

	// Servers
	ListenAddr string

	// Scheduler
	CheckInterval   time.Duration
	MarketHoursOnly bool

	LookbackDays int
}

// Load reads .env (if present) and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env file")
	}

	return &Config{
		PolygonAPIKey: mustEnv("POLYGON_API_KEY"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
		DryRun:           getBool("DRY_RUN", false),

		StateBackend:  getEnv("STATE_BACKEND", "file"),
		StatePath:     getEnv("STATE_PATH", "data/signal_state.json"),
		SQLitePath:    getEnv("SQLITE_PATH", "data/signal_state.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		GCSBucket:     getEnv("GCS_BUCKET", ""),
		GCSObject:     getEnv("GCS_OBJECT", "signal_state.json"),

		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		CheckInterval:   getDuration("CHECK_INTERVAL", 30*time.Minute),
		MarketHoursOnly: getBool("MARKET_HOURS_ONLY", true),

		LookbackDays: getInt("LOOKBACK_DAYS", 120),
	}
}

// Validate catches backend misconfiguration before anything connects.
func (c *Config) Validate() error {
	switch c.StateBackend {
	case "file", "sqlite", "redis":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("config: STATE_BACKEND=gcs requires GCS_BUCKET")
		}
	default:
		return fmt.Errorf("config: unknown STATE_BACKEND %q (want file, sqlite, redis, or gcs)", c.StateBackend)
	}
	if (c.TelegramBotToken == "") != (c.TelegramChatID == "") {
		return fmt.Errorf("config: TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	if c.CheckInterval < time.Minute {
		return fmt.Errorf("config: CHECK_INTERVAL %s is below the 1m floor", c.CheckInterval)
	}
	return nil
}

// TelegramEnabled reports whether delivery credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("[config] required env var %s not set", key)
	}
	return v
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
