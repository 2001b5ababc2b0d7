package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Client      QuoteFeedConfig `toml:"client"`
	Market      MarketConfig    `toml:"market"`
	Freshness   FreshnessConfig `toml:"freshness"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection configuration.
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// QuoteFeedConfig holds quote provider API configuration
type QuoteFeedConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the HTTP timeout duration
func (c *QuoteFeedConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// MarketConfig holds market constants. The core is market-agnostic;
// everything exchange-specific is injected here.
type MarketConfig struct {
	// DefaultExchange is appended as a suffix to bare tickers ("BHP" -> "BHP.AU").
	DefaultExchange string `toml:"default_exchange"`
	Currency        string `toml:"currency"`
	// ExchangeSuffixes maps user-entered exchange aliases to provider suffixes.
	ExchangeSuffixes map[string]string `toml:"exchange_suffixes"`
	// CapEstimates is a static market-cap estimate table keyed by symbol,
	// the last resort of the resolution chain.
	CapEstimates map[string]float64 `toml:"cap_estimates"`
}

// FreshnessConfig holds staleness thresholds per data class and the
// timeouts applied within a refresh cycle.
type FreshnessConfig struct {
	QuoteTTL        string `toml:"quote_ttl"`
	TrendingTTL     string `toml:"trending_ttl"`
	FetchTimeout    string `toml:"fetch_timeout"`
	RefreshTimeout  string `toml:"refresh_timeout"`
	RefreshInterval string `toml:"refresh_interval"`
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// GetQuoteTTL returns the single-symbol staleness threshold.
func (c *FreshnessConfig) GetQuoteTTL() time.Duration {
	return parseDurationOr(c.QuoteTTL, DefaultQuoteTTL)
}

// GetTrendingTTL returns the bulk-listing staleness threshold.
func (c *FreshnessConfig) GetTrendingTTL() time.Duration {
	return parseDurationOr(c.TrendingTTL, DefaultTrendingTTL)
}

// GetFetchTimeout returns the per-call provider timeout.
func (c *FreshnessConfig) GetFetchTimeout() time.Duration {
	return parseDurationOr(c.FetchTimeout, 8*time.Second)
}

// GetRefreshTimeout returns the overall refresh-cycle timeout.
func (c *FreshnessConfig) GetRefreshTimeout() time.Duration {
	return parseDurationOr(c.RefreshTimeout, 30*time.Second)
}

// GetRefreshInterval returns the background scheduler tick interval.
func (c *FreshnessConfig) GetRefreshInterval() time.Duration {
	return parseDurationOr(c.RefreshInterval, 15*time.Minute)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000",
			Namespace: "folio",
			Database:  "folio",
			Username:  "root",
			Password:  "root",
		},
		Client: QuoteFeedConfig{
			BaseURL:   "https://eodhd.com/api",
			RateLimit: 10,
			Timeout:   "30s",
		},
		Market: MarketConfig{
			DefaultExchange: "AU",
			Currency:        "AUD",
			ExchangeSuffixes: map[string]string{
				"ASX":    "AU",
				"NASDAQ": "US",
				"NYSE":   "US",
				"LSE":    "LSE",
			},
			CapEstimates: map[string]float64{},
		},
		Freshness: FreshnessConfig{
			QuoteTTL:        "15m",
			TrendingTTL:     "1h",
			FetchTimeout:    "8s",
			RefreshTimeout:  "30s",
			RefreshInterval: "15m",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if addr := os.Getenv("FOLIO_DB_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if user := os.Getenv("FOLIO_DB_USERNAME"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("FOLIO_DB_PASSWORD"); pass != "" {
		config.Storage.Password = pass
	}

	if key := os.Getenv("FOLIO_API_KEY"); key != "" {
		config.Client.APIKey = key
	}
	if url := os.Getenv("FOLIO_API_BASE_URL"); url != "" {
		config.Client.BaseURL = url
	}

	if ttl := os.Getenv("FOLIO_QUOTE_TTL"); ttl != "" {
		config.Freshness.QuoteTTL = ttl
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
