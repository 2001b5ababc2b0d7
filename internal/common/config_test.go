package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "AU", config.Market.DefaultExchange)
	assert.Equal(t, 15*time.Minute, config.Freshness.GetQuoteTTL())
	assert.Equal(t, 1*time.Hour, config.Freshness.GetTrendingTTL())
	assert.False(t, config.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	content := `
environment = "production"

[server]
host = "127.0.0.1"
port = 9090

[client]
api_key = "file-key"
rate_limit = 5

[freshness]
quote_ttl = "5m"

[market]
default_exchange = "US"
currency = "USD"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "file-key", config.Client.APIKey)
	assert.Equal(t, 5*time.Minute, config.Freshness.GetQuoteTTL())
	assert.Equal(t, "US", config.Market.DefaultExchange)
	assert.Equal(t, "USD", config.Market.Currency)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/folio.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_ENV", "production")
	t.Setenv("FOLIO_PORT", "3000")
	t.Setenv("FOLIO_API_KEY", "env-key")
	t.Setenv("FOLIO_QUOTE_TTL", "90s")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "env-key", config.Client.APIKey)
	assert.Equal(t, 90*time.Second, config.Freshness.GetQuoteTTL())
}

func TestFreshnessBadDurationFallsBack(t *testing.T) {
	f := FreshnessConfig{QuoteTTL: "not a duration"}
	assert.Equal(t, DefaultQuoteTTL, f.GetQuoteTTL())
	assert.Equal(t, 8*time.Second, f.GetFetchTimeout())
	assert.Equal(t, 15*time.Minute, f.GetRefreshInterval())
}

func TestQuoteFeedTimeout(t *testing.T) {
	c := QuoteFeedConfig{Timeout: "45s"}
	assert.Equal(t, 45*time.Second, c.GetTimeout())

	c.Timeout = ""
	assert.Equal(t, 30*time.Second, c.GetTimeout())
}
