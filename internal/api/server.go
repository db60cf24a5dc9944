// Package api exposes the webhook HTTP boundary of the clipping service.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	cliprepo "github.com/volleyclip/clipper/internal/repository/clip"
	jobrepo "github.com/volleyclip/clipper/internal/repository/job"
	"github.com/volleyclip/clipper/internal/worker"
)

// ServerConfig holds everything the HTTP layer depends on
type ServerConfig struct {
	Addr       string
	Dispatcher worker.Dispatcher
	Jobs       jobrepo.Repository
	Clips      cliprepo.Repository
	Logger     *slog.Logger
	StartTime  time.Time
}

// Server is the webhook HTTP server
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the server with its full route tree
func NewServer(cfg ServerConfig) *Server {
	router := NewRouter(cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
