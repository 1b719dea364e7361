// Package web serves search over HTTP: JSON search and TOC endpoints, the
// lucky redirect and uuid permalinks.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/montrey/sift/notes"
	"github.com/montrey/sift/search"
)

// Options configures the server's index and presentation.
type Options struct {
	Weights      search.Weights
	IndexOptions []search.IndexOption
	Limit        int
	MaxDisplayed int
	Markers      search.Markers
}

// Server answers search requests against a notes collection. The
// collection can be swapped while serving.
type Server struct {
	opts Options

	mu    sync.RWMutex
	notes *notes.Collection
	index *search.Index
}

// New indexes c and returns a server for it.
func New(c *notes.Collection, opts Options) (*Server, error) {
	if opts.Weights == nil {
		opts.Weights = search.DefaultWeights()
	}
	if opts.Limit <= 0 {
		opts.Limit = search.DefaultLimit
	}
	if opts.MaxDisplayed <= 0 {
		opts.MaxDisplayed = search.DefaultMaxDisplayed
	}
	if opts.Markers == (search.Markers{}) {
		opts.Markers = search.DefaultMarkers
	}
	s := &Server{opts: opts}
	if err := s.Reload(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload indexes c and swaps it in. In-flight requests keep the index they
// started with.
func (s *Server) Reload(c *notes.Collection) error {
	idx, err := search.BuildIndex(c.Units, s.opts.Weights, s.opts.IndexOptions...)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	s.mu.Lock()
	s.notes = c
	s.index = idx
	s.mu.Unlock()
	slog.Info("index ready", "units", idx.Len())
	return nil
}

func (s *Server) snapshot() (*notes.Collection, *search.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes, s.index
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthzHandler)
	r.Get("/search", s.searchPageHandler)
	r.Get("/permalink/{uuid}", s.permalinkHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.searchHandler)
		r.Get("/toc", s.tocHandler)
		r.Get("/tags", s.tagsHandler)
	})
	return r
}

// Run serves h on addr until ctx is canceled.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("sift server started", "addr", addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		slog.Info("sift server stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		slog.Info("sift server stopped")
		return nil
	}
}
