package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jdesmond91/trading-backend/internal/pricing"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the trading ledger.
type Config struct {
	Port               int
	LogLevel           string
	QuoteBaseURL       string
	QuoteTimeout       time.Duration
	PriceCacheTTL      time.Duration
	CacheSweepInterval time.Duration
	CashName           string
	CashTicker         string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutdownTimeout    time.Duration
}

// Load reads configuration from environment variables (after loading a
// .env file when present), applies defaults, and validates values. It
// returns an error for any invalid value.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	quoteBaseURL := getStr("QUOTE_BASE_URL", pricing.DefaultQuoteBaseURL)
	if quoteBaseURL == "" {
		return nil, fmt.Errorf("QUOTE_BASE_URL must not be empty")
	}

	quoteTimeout, err := getDuration("QUOTE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_TIMEOUT: %w", err)
	}

	priceCacheTTL, err := getDuration("PRICE_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_CACHE_TTL: %w", err)
	}

	cacheSweepInterval, err := getDuration("CACHE_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SWEEP_INTERVAL: %w", err)
	}

	cashName := getStr("CASH_NAME", "Canadian Dollar")
	cashTicker := getStr("CASH_TICKER", "CAD")

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:               port,
		LogLevel:           logLevel,
		QuoteBaseURL:       quoteBaseURL,
		QuoteTimeout:       quoteTimeout,
		PriceCacheTTL:      priceCacheTTL,
		CacheSweepInterval: cacheSweepInterval,
		CashName:           cashName,
		CashTicker:         cashTicker,
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		IdleTimeout:        idleTimeout,
		ShutdownTimeout:    shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
