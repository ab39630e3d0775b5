// Package server provides the HTTP API for Osusume.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/scoring"
)

// ReloadFunc rebuilds a snapshot from the configured dataset. The server
// swaps the result into the holder atomically; in-flight requests keep the
// snapshot they started with.
type ReloadFunc func(ctx context.Context) (*scoring.Snapshot, error)

// Server is the HTTP server for the Osusume API.
type Server struct {
	holder      *scoring.Holder
	recommender *scoring.Recommender
	reload      ReloadFunc
	config      *config.ServerConfig
	logger      *zap.Logger
	metrics     *metrics
	server      *http.Server
}

// NewServer creates a server with the given dependencies. reload may be nil,
// in which case the reload endpoint returns an error.
func NewServer(
	holder *scoring.Holder,
	recommender *scoring.Recommender,
	reload ReloadFunc,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		holder:      holder,
		recommender: recommender,
		reload:      reload,
		config:      cfg,
		logger:      logger,
		metrics:     newMetrics(),
	}
}

// Handler builds the chi router. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/recommend", s.handleRecommend)
	r.Get("/api/v1/status", s.handleStatus)
	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
