package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/lost-hosts/lost/src/internal/log"
)

// Server serves the API on a TCP address.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a server for handler bound to addr.
func NewServer(addr string, handler *Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(handler),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Serve accepts connections on l until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	serverErrors := make(chan error, 1)
	go func() {
		log.Infof("API server listening on http://%s", l.Addr())
		log.Infof("API endpoints available at http://%s/api/v1", l.Addr())
		serverErrors <- s.httpServer.Serve(l)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		log.Infof("Shutting down API server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error during server shutdown: %v", err)
			if err := s.httpServer.Close(); err != nil {
				return fmt.Errorf("failed to close server: %w", err)
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Infof("Server stopped gracefully")
		return nil
	}
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, l)
}
