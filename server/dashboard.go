package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/inteldash/pkg/domain"
)

// dashboardDataHandler proxies the published dashboard dataset. It makes a
// single attempt to fetch the remote document and falls back to the static
// record set on any failure: transport error, non-2xx status or a body that
// is not valid JSON. The response status is 200 either way, callers can't
// tell fallback from fresh data and that is intentional.
func (s *Server) dashboardDataHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.config.GetDashboardConfig()

	// freshness hint for any fronting cache, advisory only
	w.Header().Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", cfg.MaxAge))

	body, err := s.fetchRemote(r)
	if err != nil {
		lgr.Printf("[WARN] dashboard fetch failed, serving fallback: %v", err)
		s.metrics.dashboardFallback.Inc()
		renderJSON(w, r, http.StatusOK, domain.FallbackRecords)
		return
	}

	s.metrics.dashboardRemote.Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		lgr.Printf("[ERROR] can't write dashboard response: %v", err)
	}
}

// fetchRemote retrieves the remote dataset, exactly one attempt, no retries.
// The returned bytes are relayed to the caller verbatim.
func (s *Server) fetchRemote(r *http.Request) ([]byte, error) {
	cfg := s.config.GetDashboardConfig()

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, cfg.SourceURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", cfg.SourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("remote body is not valid json")
	}

	return body, nil
}
