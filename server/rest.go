package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}

	if s.archive != nil {
		if count, err := s.archive.Count(r.Context()); err == nil {
			status["archived_records"] = count
		}
	}

	renderJSON(w, r, http.StatusOK, status)
}

// archiveListHandler returns archived records, newest first
func (s *Server) archiveListHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	records, err := s.archive.List(r.Context(), limit, offset)
	if err != nil {
		lgr.Printf("[ERROR] failed to list archive: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, records)
}

// archiveSearchHandler returns archived records matching the query
func (s *Server) archiveSearchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		renderError(w, r, fmt.Errorf("query parameter q is required"), http.StatusBadRequest)
		return
	}

	limit, offset := pageParams(r)

	records, err := s.archive.Search(r.Context(), q, limit, offset)
	if err != nil {
		lgr.Printf("[ERROR] failed to search archive: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, records)
}

// updateHandler triggers a pipeline run now
func (s *Server) updateHandler(w http.ResponseWriter, r *http.Request) {
	if s.updater == nil {
		renderError(w, r, fmt.Errorf("update pipeline is not enabled"), http.StatusServiceUnavailable)
		return
	}

	s.metrics.updateRuns.Inc()
	if err := s.updater.RunNow(r.Context()); err != nil {
		lgr.Printf("[ERROR] pipeline run failed: %v", err)
		s.metrics.updateFailures.Inc()
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"result": "updated"})
}

// pageParams extracts limit/offset query parameters with defaults
func pageParams(r *http.Request) (limit, offset int) {
	limit = 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
