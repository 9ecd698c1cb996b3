// Package server provides the HTTP API for Jinzai.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/jinzai/internal/config"
	"github.com/hyperjump/jinzai/internal/intake"
	"github.com/hyperjump/jinzai/internal/store"
)

// Server is the HTTP server for the Jinzai API.
type Server struct {
	store   *store.Store
	intake  *intake.Service
	cfg     *config.Config
	logger  *zap.Logger
	version string
	started time.Time
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	st *store.Store,
	svc *intake.Service,
	cfg *config.Config,
	logger *zap.Logger,
	version string,
) *Server {
	return &Server{
		store:   st,
		intake:  svc,
		cfg:     cfg,
		logger:  logger,
		version: version,
		started: time.Now(),
	}
}

// Router builds the API routes. Exposed so tests can drive the full routing
// stack through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(s.cfg.Server.RequestTimeoutSeconds) * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/resumes", s.handleSubmitResume)
	r.Get("/api/v1/resumes", s.handleListResumes)
	r.Delete("/api/v1/resumes/{filename}", s.handleDeleteResume)
	r.Delete("/api/v1/resumes", s.handleClearResumes)
	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
