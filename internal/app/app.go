// Package app wires configuration, storage, clients, and services into a
// runnable application core shared by the server binary and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/foliohq/folio/internal/clients/marketfeed"
	"github.com/foliohq/folio/internal/common"
	"github.com/foliohq/folio/internal/interfaces"
	"github.com/foliohq/folio/internal/services/marketdata"
	"github.com/foliohq/folio/internal/storage/surrealdb"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	QuoteClient interfaces.QuoteClient
	MarketData  interfaces.MarketDataService
	StartupTime time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, the quote client, and the market data
// service. configPath may be empty, in which case the default resolution
// logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Resolve config path: explicit arg, FOLIO_CONFIG, binary dir, dev fallback
	binDir := getBinaryDir()
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Client.APIKey == "" {
		logger.Warn().Msg("Quote provider API key not configured - refreshes will fail")
	}

	quoteClient := marketfeed.NewClient(config.Client.APIKey,
		marketfeed.WithBaseURL(config.Client.BaseURL),
		marketfeed.WithLogger(logger),
		marketfeed.WithRateLimit(config.Client.RateLimit),
		marketfeed.WithTimeout(config.Client.GetTimeout()),
	)

	marketData := marketdata.NewService(storageManager, quoteClient, config, logger)

	logger.Info().
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")

	return &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		QuoteClient: quoteClient,
		MarketData:  marketData,
		StartupTime: startupStart,
	}, nil
}

// StartScheduler launches the background stale-refresh loop.
func (a *App) StartScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel

	interval := a.Config.Freshness.GetRefreshInterval()
	a.Logger.Info().
		Dur("interval", interval).
		Msg("Starting refresh scheduler")

	go startRefreshScheduler(ctx, a.MarketData, a.Logger, interval)
}

// Close shuts down the scheduler and storage.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	if a.Storage != nil {
		a.Storage.Close()
	}
}
