// Package api serves the parser and the packing engine over HTTP.
//
//	GET  /api/health   liveness
//	POST /api/parse    {"text": "..."}
//	POST /api/pack     {"pieces": [...] | "text": "...", "options": {...}}
//	POST /api/compare  {"pieces": [...] | "text": "...", "options": {...}, "rolls": [...]}
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/piwi3910/FilmCut/internal/cache"
	"github.com/piwi3910/FilmCut/internal/model"
)

// Config holds the dependencies of a Server.
type Config struct {
	Logger        *log.Logger
	Cache         cache.Cache   // nil disables result caching
	CacheTTL      time.Duration // 0 keeps entries until evicted
	Defaults      model.PackingOptions
	Rolls         model.RollCatalog // used by /api/compare when a request names no rolls
	MaxConcurrent int               // simultaneous pack/compare requests, 0 = unlimited
	MaxBodyBytes  int64             // request body limit, 0 = DefaultMaxBodyBytes
	MaxInstances  int               // expanded pieces per request, 0 = model.DefaultMaxInstances
}

// DefaultMaxBodyBytes is the request body limit when Config sets none.
const DefaultMaxBodyBytes = 1 << 20

// Server handles the HTTP API.
type Server struct {
	logger   *log.Logger
	cache    cache.Cache
	ttl      time.Duration
	defaults model.PackingOptions
	rolls    model.RollCatalog
	maxInst  int
	router   chi.Router
}

// New builds a Server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		logger:   cfg.Logger,
		cache:    cfg.Cache,
		ttl:      cfg.CacheTTL,
		defaults: cfg.Defaults.WithDefaults(),
		rolls:    cfg.Rolls,
		maxInst:  cfg.MaxInstances,
	}
	if s.maxInst <= 0 {
		s.maxInst = model.DefaultMaxInstances
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.defaults.StripWidth == 0 {
		s.defaults.StripWidth = model.DefaultStripWidth
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequestSize(maxBody))
		r.Get("/health", s.handleHealth)
		r.Post("/parse", s.handleParse)
		r.Group(func(r chi.Router) {
			r.Use(limiter(cfg.MaxConcurrent))
			r.Post("/pack", s.handlePack)
			r.Post("/compare", s.handleCompare)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
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
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, resp)
}
