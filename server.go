package mvtgeojson

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Version is reported by the CLI and the health endpoint.
var Version = "dev"

// Server exposes a Pipeline over HTTP.
type Server struct {
	pipeline   *Pipeline
	pretty     bool
	sourceName string
	httpServer *http.Server
}

// ServerOptions configures a Server.
type ServerOptions struct {
	Port int
	// Pretty indents responses unless the request overrides it.
	Pretty bool
	// SourceName is reported by the health endpoint.
	SourceName string
}

// NewServer creates a server for pipeline. It does not start listening.
func NewServer(pipeline *Pipeline, opts ServerOptions) *Server {
	s := &Server{
		pipeline:   pipeline,
		pretty:     opts.Pretty,
		sourceName: opts.SourceName,
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routes served by s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/tiles/{z}/{x}/{file}", s.handleTile)
	return mux
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logrus.WithField("addr", s.httpServer.Addr).Info("server listening")

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logrus.Info("server shut down successfully")
	return nil
}
