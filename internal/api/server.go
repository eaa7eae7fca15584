package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/scout/internal/logger"
)

// ServerOptions configures the HTTP listener.
type ServerOptions struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Server is an HTTP server with graceful shutdown.
type Server struct {
	server          *http.Server
	shutdownTimeout time.Duration
	log             logger.Logger
}

// NewServer wraps handler in an http.Server.
func NewServer(handler http.Handler, opts ServerOptions, log logger.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              opts.Address,
			Handler:           handler,
			ReadHeaderTimeout: opts.ReadTimeout,
			ReadTimeout:       opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
		},
		shutdownTimeout: opts.ShutdownTimeout,
		log:             log,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server",
			logger.String("address", s.server.Addr),
			logger.Duration("read_timeout", s.server.ReadTimeout),
			logger.Duration("write_timeout", s.server.WriteTimeout),
		)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("Context cancelled, shutting down")
	}

	return s.Shutdown(context.WithoutCancel(ctx))
}

// Shutdown stops accepting connections and waits for in-flight requests up
// to the shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server", logger.Duration("timeout", s.shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server stopped gracefully")
	return nil
}
