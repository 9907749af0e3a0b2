// Package server exposes the rendering pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/render?format=svg   render a shaded molecule
//	GET  /v1/colormaps           list colour maps
//	GET  /healthz                liveness check
//
// The render body is a [pipeline.Request]:
//
//	{"molecule": {...}, "shading": {"atoms": [0.2, -0.5]}, "options": {"colormap": "xenosite_bwr"}}
//
// Responses carry the rendered document with its content type, the
// X-Request-Hash of the request and X-Cache (hit or miss). Errors are JSON
// objects with a code, a message and the request ID.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/xenopict/pkg/colormap"
	"github.com/matzehuels/xenopict/pkg/pipeline"
)

const (
	// DefaultMaxBodySize limits render request bodies.
	DefaultMaxBodySize = 4 << 20

	// DefaultTimeout bounds one request, including PNG and PDF conversion.
	DefaultTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Server handles HTTP render requests with a shared pipeline runner.
type Server struct {
	runner    *pipeline.Runner
	logger    *log.Logger
	defaults  pipeline.Options
	colormaps *colormap.Registry
	maxBody   int64
	timeout   time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets options applied under every request's own options.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithMaxBodySize limits request bodies to n bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithTimeout bounds request handling.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a server. A nil logger means the runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:    runner,
		logger:    logger,
		colormaps: runner.Colormaps,
		maxBody:   DefaultMaxBodySize,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/colormaps", s.handleColormaps)
		r.With(middleware.AllowContentType("application/json")).Post("/render", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
