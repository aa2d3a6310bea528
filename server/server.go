// File: server/server.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Server construction mirrors NewServer in the teacher's server/server.go:
// build dependencies, apply functional options, wire the HTTP mux.

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentics/maas/adapters"
	"github.com/momentics/maas/api"
	"github.com/momentics/maas/internal/registry"
	"github.com/momentics/maas/internal/slab"
	"github.com/momentics/maas/internal/telemetry"
)

// Server is the MAS HTTP server facade: it owns the slab allocator, the
// outstanding-allocation registry, and the http.Server accepting
// allocate/deallocate/health/stats/metrics traffic.
type Server struct {
	cfg        *Config
	logger     *slog.Logger
	middleware []Middleware

	allocator *slab.Allocator
	registry  *registry.Registry
	control   api.Control
	startedAt time.Time

	httpServer *http.Server
	listener   net.Listener
}

// New builds a Server from cfg (DefaultConfig() if nil) and opts.
func New(cfg *Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	allocator, err := slab.NewAllocator(cfg.SizeClasses, cfg.MaxPoolBytes)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		logger:    slog.Default(),
		allocator: allocator,
		registry:  registry.New(),
		startedAt: time.Now(),
	}
	for _, o := range opts {
		o(s)
	}

	s.control = adapters.NewControlAdapter(func() map[string]any {
		stats := telemetry.Stats(s.allocator, s.registry)
		return map[string]any{
			"active_allocations":    stats.ActiveAllocations,
			"total_allocations":     stats.TotalAllocations,
			"total_allocated_bytes": stats.TotalAllocatedBytes,
			"utilization_percent":   stats.UtilizationPercent,
		}
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(telemetry.New(s.allocator, s.registry))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /allocate", chain(s.handleAllocate, s.loggingMiddleware))
	mux.HandleFunc("DELETE /allocate/{id}", chain(s.handleDeallocate, s.loggingMiddleware))
	mux.HandleFunc("GET /health", chain(s.handleHealth, s.loggingMiddleware))
	mux.HandleFunc("GET /stats", chain(s.handleStats, s.loggingMiddleware))
	mux.HandleFunc("GET /debug", chain(s.handleDebug, s.loggingMiddleware))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	handler := http.HandlerFunc(mux.ServeHTTP)
	for i := len(s.middleware) - 1; i >= 0; i-- {
		handler = s.middleware[i](handler)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// Allocator exposes the underlying slab allocator for tests.
func (s *Server) Allocator() *slab.Allocator {
	return s.allocator
}

// Registry exposes the underlying allocation registry for tests.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Control exposes the server's runtime diagnostics surface, for
// registering additional debug probes before Run is called.
func (s *Server) Control() api.Control {
	return s.control
}

// Handler returns the fully wired http.Handler backing this server,
// including any configured middleware. It lets callers embed the MAS
// server in a test harness (httptest.NewServer) or a larger mux without
// going through Run.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts listening and blocks until ctx is canceled, then drains
// in-flight requests within cfg.ShutdownTimeout, mirroring the
// context.WithTimeout teardown in the teacher's server/run.go.
func (s *Server) Run(ctx context.Context) error {
	ln, err := newTunedListener(s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.ListenAddr, err)
	}
	s.listener = ln

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.ListenAddr)
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return <-errCh
}

// Shutdown implements api.GracefulShutdown by stopping the server's
// listen loop via http.Server.Shutdown, bounded by cfg.ShutdownTimeout,
// for callers that are not driving Run with a cancelable context.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
