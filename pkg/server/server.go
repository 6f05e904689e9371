// Package server exposes comparisons and conversions over HTTP.
//
// # Endpoints
//
//	GET  /healthz      liveness and build information
//	GET  /metrics      Prometheus metrics
//	POST /v1/compare   compare two networks, returns a pipeline.Record
//	POST /v1/convert   convert one input to newick, enewick or json
//	POST /v1/render    draw one input as svg or png
//
// Inputs are given inline: a JSON string is read as Newick or extended
// Newick text, a JSON object as a network graph in the io package's format.
//
//	POST /v1/compare
//	{
//	  "a": "((A,A),B);",
//	  "b": "(((A)#H1,#H1),B);",
//	  "options": {"threshold": 0.2, "normalize": true}
//	}
//
// Every response carries an X-Request-ID header.
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

	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 15 * time.Second

// Config configures a Server.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64

	// Defaults are applied to every request. Requests may lower the edit
	// distance timeout but not raise it.
	Defaults pipeline.Options

	// Gatherer serves /metrics. Nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Server handles HTTP requests with a shared runner.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds the router.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 8 << 20
	}
	cfg.Defaults.Logger = logger
	_ = cfg.Defaults.ValidateAndSetDefaults()

	s := &Server{cfg: cfg, runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/compare", s.handleCompare)
		r.Post("/convert", s.handleConvert)
		r.Post("/render", s.handleRender)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
