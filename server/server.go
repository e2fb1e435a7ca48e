package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/inteldash/pkg/config"
	"github.com/umputun/inteldash/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/archive.go -pkg mocks -skip-ensure -fmt goimports . Archive
//go:generate moq -out mocks/updater.go -pkg mocks -skip-ensure -fmt goimports . Updater

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	archive Archive
	updater Updater
	version string
	debug   bool

	client  *http.Client // outbound client for the dashboard fetch, transport defaults only
	metrics *Metrics

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Archive interface for record archive reads
type Archive interface {
	List(ctx context.Context, limit, offset int) ([]domain.Record, error)
	Search(ctx context.Context, q string, limit, offset int) ([]domain.Record, error)
	Count(ctx context.Context) (int, error)
}

// Updater interface for on-demand pipeline runs
type Updater interface {
	RunNow(ctx context.Context) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetDashboardConfig() config.DashboardConfig
}

// New initializes a new server instance. The updater may be nil when the
// update pipeline is disabled.
func New(cfg ConfigProvider, archive Archive, updater Updater, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		archive: archive,
		updater: updater,
		version: version,
		debug:   debug,
		client:  &http.Client{}, // redirects followed, no timeout beyond transport defaults
		metrics: NewMetrics(),
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("inteldash", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /dashboard-data", s.dashboardDataHandler)
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /archive", s.archiveListHandler)
		r.HandleFunc("GET /archive/search", s.archiveSearchHandler)
		r.HandleFunc("POST /update", s.updateHandler)
	})

	s.router.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
}
