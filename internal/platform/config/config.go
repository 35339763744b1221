// Package config loads application configuration from environment
// variables, with optional .env support via godotenv.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the application reads from the
// environment.
type Config struct {
	Port   string // HTTP listen port for the API server
	DBPath string // SQLite database file

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration // market-watch read cache TTL

	DPSBaseURL              string // exchange data portal root
	InvestorsLoungeBaseURL  string // price-history proxy root
	HTTPTimeout             time.Duration
	RateLimitCallsPerMinute int

	Epoch     time.Time     // backfill start for newly added tickers
	Cutoff    time.Duration // local-clock offset gating today's data
	BatchSize int
}

// Load reads the configuration. A .env file in the working directory is
// applied first when present; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	return Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "data/psx.db"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),

		DPSBaseURL:              getEnv("DPS_BASE_URL", "https://dps.psx.com.pk"),
		InvestorsLoungeBaseURL:  getEnv("INVESTORS_LOUNGE_BASE_URL", "https://www.investorslounge.com"),
		HTTPTimeout:             getDuration("HTTP_TIMEOUT", 30*time.Second),
		RateLimitCallsPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 60),

		Epoch:     getDate("EPOCH_DATE", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		Cutoff:    getDuration("PUBLICATION_CUTOFF", 17*time.Hour),
		BatchSize: getInt("BATCH_SIZE", 100),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

func getDate(key string, fallback time.Time) time.Time {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		slog.Warn("invalid date in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
