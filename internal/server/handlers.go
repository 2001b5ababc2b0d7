package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/foliohq/folio/internal/common"
	"github.com/foliohq/folio/internal/services/marketdata"
)

const defaultTrendingLimit = 10

// handleHealth handles GET /api/health — liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": s.config.Environment,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /api/version — build info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetVersion(),
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}

// handleGetSecurity handles GET /api/securities/{symbol} — the freshness-gated
// lookup. Fresh records come from the cache, stale ones trigger a provider
// refresh, and a failed refresh falls back to the stale copy with the
// source field flagged.
func (s *Server) handleGetSecurity(w http.ResponseWriter, r *http.Request, symbol string) {
	data, err := s.marketData.GetOrRefresh(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, marketdata.ErrUnavailable) {
			WriteError(w, http.StatusNotFound, "security not found: "+symbol)
			return
		}
		WriteError(w, http.StatusInternalServerError, "failed to get security: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, data)
}

// handleBulk handles POST /api/securities/bulk — resolve multiple symbols
// in one call. Symbols that cannot be resolved are omitted from the result.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Symbols []string `json:"symbols"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	symbols := make([]string, 0, len(req.Symbols))
	for _, sym := range req.Symbols {
		if trimmed := strings.TrimSpace(sym); trimmed != "" {
			symbols = append(symbols, trimmed)
		}
	}
	if len(symbols) == 0 {
		WriteError(w, http.StatusBadRequest, "symbols is required")
		return
	}

	results, err := s.marketData.BulkGetOrRefresh(r.Context(), symbols)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "bulk lookup failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requested":  len(symbols),
		"resolved":   len(results),
		"securities": results,
	})
}

// handleTrending handles GET /api/securities/trending?limit=N — score the
// active universe and return the top movers.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := defaultTrendingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.marketData.Trending(r.Context(), limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to compute trending: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(entries),
		"trending": entries,
	})
}

// handleForceRefresh handles POST /api/securities/{symbol}/refresh — bypass
// the freshness gate and pull from the provider unconditionally.
func (s *Server) handleForceRefresh(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	data, err := s.marketData.ForceRefresh(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, marketdata.ErrUnavailable) {
			WriteError(w, http.StatusNotFound, "security not found: "+symbol)
			return
		}
		WriteError(w, http.StatusInternalServerError, "refresh failed: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, data)
}

// handleDeactivate handles DELETE /api/securities/{symbol} — soft-delete a
// symbol so the scheduler and trending stop touching it.
func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request, symbol string) {
	if err := s.marketData.Deactivate(r.Context(), symbol); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to deactivate: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"symbol": symbol,
	})
}
