// If you are AI: This file implements the HTTP server lifecycle and routing.

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scriptvar/internal/config"
	"scriptvar/internal/core/docs"
	"scriptvar/internal/core/jsvar"
	"scriptvar/internal/svc/embed"
	"scriptvar/internal/svc/health"
	"scriptvar/internal/svc/wsembed"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer      *http.Server
	healthSvc       *health.Service
	registry        *docs.Registry
	logger          log.Logger
	shutdownTimeout time.Duration
}

// New creates a new server instance with the given configuration.
// Configured documents are loaded eagerly; any failure aborts construction.
// The server is not started until Start is called.
func New(cfg *config.Config, logger log.Logger) (*Server, error) {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := embed.NewMetrics(promRegistry)

	serializer := jsvar.New(cfg.Serializer.Options())
	registry := docs.NewRegistry(serializer)

	for _, dc := range cfg.Documents {
		doc, err := registry.LoadFile(dc.Name, dc.Path, dc.VarName)
		if err != nil {
			return nil, fmt.Errorf("load documents: %w", err)
		}
		level.Info(logger).Log("msg", "loaded document", "name", doc.Name, "path", doc.Path, "var", doc.VarName)
	}
	metrics.Documents.Set(float64(registry.Count()))

	cache, err := docs.NewCache(*cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	settings := embed.Settings{
		VarName:      cfg.Serializer.VarName,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}

	router := mux.NewRouter()

	healthSvc := health.New(registry)
	healthSvc.RegisterRoutes(router)

	embed.NewService(registry, cache, serializer, settings, logger, metrics).RegisterRoutes(router)
	wsembed.NewHandler(serializer, settings, logger, metrics).RegisterRoutes(router)
	router.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	healthSvc.MarkReady()

	return &Server{
		httpServer:      httpServer,
		healthSvc:       healthSvc,
		registry:        registry,
		logger:          logger,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Registry returns the document registry.
func (s *Server) Registry() *docs.Registry {
	return s.registry
}

// Start begins serving HTTP requests.
// This method blocks until the server is stopped or encounters an error.
func (s *Server) Start() error {
	level.Info(s.logger).Log("msg", "starting http server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
// Returns an error if shutdown fails or ctx expires first.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ShutdownWithTimeout stops the server within the configured shutdown timeout.
// This is a convenience wrapper around Shutdown.
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
