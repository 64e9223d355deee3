// Package server exposes the layout engine over an HTTP JSON API.
//
// Pure operations (compact, move, resize, synchronize, validate and the
// responsive resolver) take the whole layout in the request and return the
// result; their responses are memoized through a [cache.Cache]. Engine
// sessions under /v1/grids keep one grid per id on the server and are driven
// by posted pointer events.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridkit/pkg/cache"
)

const (
	// DefaultAddr is the listen address of [Server.Run].
	DefaultAddr = ":8080"

	// DefaultMaxGrids bounds the number of live engine sessions.
	DefaultMaxGrids = 1000

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 4 << 20

	shutdownTimeout = 5 * time.Second
)

// Server serves the gridkit HTTP API.
type Server struct {
	router   chi.Router
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *log.Logger
	maxGrids int

	mu    sync.RWMutex
	grids map[string]*gridSession
}

// Option configures a Server.
type Option func(*Server)

// WithCache sets the cache used to memoize pure operations.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		if c != nil {
			s.cache = c
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogger sets the request and engine logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxGrids bounds the number of live engine sessions.
func WithMaxGrids(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxGrids = n
		}
	}
}

// New creates a server. Without options it memoizes nothing and logs
// nowhere.
func New(opts ...Option) *Server {
	s := &Server{
		cache:    cache.NewNullCache(),
		cacheTTL: cache.DefaultTTL,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		maxGrids: DefaultMaxGrids,
		grids:    make(map[string]*gridSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/compact", s.handleCompact)
		r.Post("/move", s.handleMove)
		r.Post("/resize", s.handleResize)
		r.Post("/synchronize", s.handleSynchronize)
		r.Post("/validate", s.handleValidate)
		r.Get("/breakpoint", s.handleBreakpoint)
		r.Post("/responsive/resolve", s.handleResolve)

		r.Route("/grids", func(r chi.Router) {
			r.Post("/", s.handleCreateGrid)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetGrid)
				r.Delete("/", s.handleDeleteGrid)
				r.Post("/events", s.handleGridEvent)
				r.Post("/width", s.handleGridWidth)
			})
		})
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close releases the memoization cache.
func (s *Server) Close() error {
	return s.cache.Close()
}
