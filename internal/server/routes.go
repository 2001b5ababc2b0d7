package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Securities
	mux.HandleFunc("/api/securities/trending", s.handleTrending)
	mux.HandleFunc("/api/securities/bulk", s.handleBulk)
	mux.HandleFunc("/api/securities/", s.routeSecurities)
}

// routeSecurities dispatches /api/securities/{symbol}[/refresh] to the
// appropriate handler.
func (s *Server) routeSecurities(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/securities/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	parts := strings.SplitN(path, "/", 2)
	symbol := parts[0]

	if len(parts) == 2 {
		switch parts[1] {
		case "refresh":
			s.handleForceRefresh(w, r, symbol)
		default:
			WriteError(w, http.StatusNotFound, "Unknown securities endpoint")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetSecurity(w, r, symbol)
	case http.MethodDelete:
		s.handleDeactivate(w, r, symbol)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}
