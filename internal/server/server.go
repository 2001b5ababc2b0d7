// Package server exposes the REST API over the market data service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/foliohq/folio/internal/common"
	"github.com/foliohq/folio/internal/interfaces"
)

// Server wraps the HTTP server and its service dependencies.
type Server struct {
	marketData interfaces.MarketDataService
	config     *common.Config
	logger     *common.Logger
	server     *http.Server
}

// NewServer creates a new HTTP REST API server.
func NewServer(marketData interfaces.MarketDataService, config *common.Config, logger *common.Logger) *Server {
	s := &Server{
		marketData: marketData,
		config:     config,
		logger:     logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux, logger)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
