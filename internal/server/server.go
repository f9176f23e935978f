// Package server implements the companion API the browse client talks to:
// filtered collection pages, facet vocabularies and slug lookups over a
// SQLite-backed dataset. Filtering runs through the same predicates the
// offline client uses, so both paths agree on what matches.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/source"
)

const shutdownGrace = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr   string
	Logger *zap.Logger
}

// Server serves the companion API from an in-memory dataset snapshot.
// SetDataset swaps the snapshot wholesale; requests in flight keep the
// one they started with.
type Server struct {
	addr string
	log  *zap.Logger

	mu       sync.RWMutex
	profiles []directory.Profile
	projects []directory.Project
}

// New builds a Server. A nil logger disables request logging.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{addr: opts.Addr, log: opts.Logger}
}

// SetDataset installs a new dataset snapshot.
func (s *Server) SetDataset(ds source.Dataset) {
	s.mu.Lock()
	s.profiles = ds.Profiles
	s.projects = ds.Projects
	s.mu.Unlock()
}

func (s *Server) snapshot() ([]directory.Profile, []directory.Project) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles, s.projects
}

// Handler returns the routed API surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(recoverer(s.log))
	r.Use(requestLogger(s.log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/people", s.handleListPeople)
		r.Get("/people/facets", s.handlePeopleFacets)
		r.Get("/people/{slug}", s.handleGetPerson)

		r.Get("/projects", s.handleListProjects)
		r.Get("/projects/facets", s.handleProjectFacets)
		r.Get("/projects/{slug}", s.handleGetProject)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/debug/metrics", s.handleMetrics)

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("listening", zap.String("addr", s.addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		s.log.Info("stopped")
		return nil
	}
}
