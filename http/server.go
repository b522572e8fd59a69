package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// ServerConfig holds listener and lifecycle settings for Server.
type ServerConfig struct {
	// Port 0 binds an ephemeral port; use Addr to find it.
	Port            int
	Prefix          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Server is an HTTP server with an explicit lifecycle: Listen binds the
// port, Serve handles requests until its context is cancelled.
type Server struct {
	config ServerConfig
	srv    *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a Server for handler. Nothing is bound until Listen.
func NewServer(config ServerConfig, handler http.Handler) *Server {
	if config.Prefix == "" {
		config.Prefix = DefaultPrefix
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 30 * time.Second
	}
	return &Server{
		config: config,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Port),
			Handler:           handler,
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		},
	}
}

// Listen binds the configured port. A bind failure is returned as is.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return errors.New("listen: already listening")
	}

	l, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	s.listener = l
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound port, or the configured one before Listen.
func (s *Server) Port() int {
	if addr, ok := s.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return s.config.Port
}

// Serve announces the listening address and the two resource URLs, then
// handles requests until ctx is cancelled, at which point it shuts down
// gracefully within ShutdownTimeout. Listen must be called first.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()

	if l == nil {
		return errors.New("serve: not listening")
	}

	base := fmt.Sprintf("http://localhost:%d", s.Port())
	slog.Info("Roofing Materials Server running at " + base)
	slog.Info("Access images at " + base + s.config.Prefix + "/Images/{filename}")
	slog.Info("Access companies data at " + base + s.config.Prefix + "/all-companies.json")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// ListenAndServe binds the port and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}
