package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "cache unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query domain.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, err := s.searchService.Search(r.Context(), query)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	rawText := r.URL.Query().Get("q")
	if rawText == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	plan, err := s.searchService.Plan(r.Context(), rawText)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// writeSearchError maps core errors to distinguishable HTTP states.
// A failed geocode must not look like an empty result set.
func writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
			Error: "location lookups are busy, retry shortly",
			Code:  "rate_limited",
		})
	case errors.Is(err, domain.ErrGeocodeFailed):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: "could not resolve the place in your query, try rephrasing",
			Code:  "geocode_failed",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	default:
		writeError(w, http.StatusInternalServerError, "search failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
