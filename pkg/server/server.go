// Package server exposes editing sessions over HTTP.
//
// Every session owns one tree store. Clients create a session, apply edits
// by path, move through the history, and fetch the tree as JSON, DOT or SVG.
// Requests to one session are serialized; different sessions proceed in
// parallel.
//
// # Routes
//
//	POST   /sessions                      create (body: optional tree text)
//	GET    /sessions/{id}                 current state
//	DELETE /sessions/{id}                 end the session
//	POST   /sessions/{id}/add?path=01     grow or collapse the vertex at path
//	POST   /sessions/{id}/remove?path=01  drop the child slot at path
//	POST   /sessions/{id}/promote?path=01 keep only the subtree at path
//	POST   /sessions/{id}/divide          divide the whole tree
//	POST   /sessions/{id}/cut             cut the whole tree
//	POST   /sessions/{id}/undo            step back in the history
//	POST   /sessions/{id}/redo            step forward in the history
//	POST   /sessions/{id}/load            replace the tree (body: tree text)
//	GET    /sessions/{id}/dot             Graphviz source
//	GET    /sessions/{id}/svg             rendered diagram
//	GET    /classify?tree=[0,0]           classify without a session
//	GET    /metrics                       Prometheus metrics
//	GET    /version                       build information
//
// Errors are JSON objects {"code": ..., "message": ...}. Rejected input
// (INVALID_PATH, PARSE_FAILURE, INVALID_INPUT) is 400, unknown sessions are
// 404, the session cap is 429, and anything else is 500.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/fractal/pkg/cache"
	"github.com/matzehuels/fractal/pkg/render/nodelink"
	"github.com/matzehuels/fractal/pkg/session"
	"github.com/matzehuels/fractal/pkg/store"
	"github.com/matzehuels/fractal/pkg/tree"
)

// Config configures a Server.
type Config struct {
	// Sessions holds the editing sessions. Nil creates a registry with
	// session.DefaultTTL and session.DefaultMaxSessions.
	Sessions *session.Registry

	// Initial is the tree a session starts from when created without a
	// body. Nil means a leaf.
	Initial tree.Tree

	// Diagram configures the DOT and SVG endpoints.
	Diagram nodelink.Options

	// Gatherer backs /metrics. Nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Cache holds rendered SVG diagrams for DiagramTTL. Nil disables
	// caching.
	Cache      cache.Cache
	DiagramTTL time.Duration

	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	sessions *session.Registry
	initial  tree.Tree
	diagram  nodelink.Options
	gatherer prometheus.Gatherer
	cache    cache.Cache
	ttl      time.Duration
	logger   *log.Logger
}

// New creates a Server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.NewRegistry(session.Options{
			TTL:         session.DefaultTTL,
			MaxSessions: session.DefaultMaxSessions,
			Logger:      logger,
		})
	}
	initial := cfg.Initial
	if initial == nil {
		initial = tree.Leaf{}
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	dc := cfg.Cache
	if dc == nil {
		dc = cache.NewNullCache()
	}
	return &Server{
		sessions: sessions,
		initial:  initial,
		diagram:  cfg.Diagram,
		gatherer: gatherer,
		cache:    dc,
		ttl:      cfg.DiagramTTL,
		logger:   logger,
	}
}

// Handler returns the router serving every route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.observe)
	r.Use(s.recoverer)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)

			r.Post("/add", s.pathEdit((*store.Store).Add))
			r.Post("/remove", s.pathEdit((*store.Store).Remove))
			r.Post("/promote", s.pathEdit((*store.Store).Promote))
			r.Post("/divide", s.edit((*store.Store).DivideAll))
			r.Post("/cut", s.edit((*store.Store).CutAll))
			r.Post("/undo", s.history((*store.Store).Undo))
			r.Post("/redo", s.history((*store.Store).Redo))
			r.Post("/load", s.load)

			r.Get("/dot", s.diagramHandler(false))
			r.Get("/svg", s.diagramHandler(true))
		})
	})
	r.Get("/classify", s.classify)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/version", s.version)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes the diagram cache. Expired sessions are swept once
// a minute meanwhile.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	defer s.cache.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sessions.RunCleanup(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
