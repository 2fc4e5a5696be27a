// Package server exposes fixture generation over HTTP.
//
// Test suites written in other languages (or running on machines without the
// CLI) fetch fixtures on demand instead of checking them in:
//
//	GET /healthz
//	GET /version
//	GET /v1/token?nodes=10&coverage=30&seed=42
//	GET /v1/pattern?nodes=10&coverage=30&seed=42&index=2
//	GET /v1/fixture?nodes=10&coverage=30&seed=42&isographs=3
//	GET /metrics
//
// Token and pattern responses are the exact fixture text the CLI writes to
// disk for the same parameters and seed. Every response carries the seed in
// the X-Fixture-Seed header so unseeded requests can be replayed.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/isofixture/pkg/observability"
	"github.com/matzehuels/isofixture/pkg/pipeline"
)

// Timeouts applied to the underlying http.Server.
const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 15 * time.Second
)

// Server serves fixtures generated by a pipeline.Runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	registry *prometheus.Registry
	router   chi.Router
}

// New creates a server. Metrics are collected into reg, which is also what
// /metrics exposes; pass nil to use a fresh registry.
func New(runner *pipeline.Runner, logger *log.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{runner: runner, logger: logger, registry: reg}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Get("/version", s.version)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/token", s.token)
		r.Get("/pattern", s.pattern)
		r.Get("/fixture", s.fixture)
	})
	return r
}

// instrument reports every request to the HTTP hooks and logs it at debug level.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))

		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	return <-errCh
}
