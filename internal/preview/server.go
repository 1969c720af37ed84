// SPDX-License-Identifier: MPL-2.0

// Package preview serves a built output tree over HTTP for local review.
// The server embeds serverbase.Base for lifecycle management and optionally
// re-runs a build callback when sources change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"folio-cli/internal/core/serverbase"
	"folio-cli/pkg/types"
)

const (
	defaultStartupTimeout  = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

type (
	// Config holds the parameters for a preview Server.
	Config struct {
		// Host is the interface to bind. Empty means localhost only.
		Host string
		// Port is the TCP port to listen on. Zero auto-selects a free port.
		Port types.ListenPort
		// Dir is the directory to serve.
		Dir types.FilesystemPath
		// StartupTimeout bounds how long Start waits for the listener.
		StartupTimeout time.Duration
		// ShutdownTimeout bounds graceful shutdown in Stop.
		ShutdownTimeout time.Duration
		// Logger receives lifecycle messages. nil uses the default logger.
		Logger *log.Logger
	}

	// Server serves static files from a build output directory.
	Server struct {
		*serverbase.Base

		cfg    Config
		logger *log.Logger

		srvMu    sync.Mutex
		srv      *http.Server
		listener net.Listener
		addr     string
	}
)

// New creates a preview Server. The configured port is validated eagerly.
func New(cfg Config) (*Server, error) {
	if err := cfg.Port.Validate(); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = defaultStartupTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Base:   serverbase.NewBase(),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Start binds the listener and begins serving. It blocks until the server
// is ready, fails to start, or the context is cancelled. After Start
// returns nil, use Err() to monitor for runtime errors.
func (s *Server) Start(ctx context.Context) error {
	if err := s.TransitionToStarting(ctx); err != nil {
		return err
	}

	startupCtx, startupCancel := context.WithTimeout(ctx, s.cfg.StartupTimeout)
	defer startupCancel()

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port.String())
	var lc net.ListenConfig
	listener, err := lc.Listen(startupCtx, "tcp", addr)
	if err != nil {
		s.TransitionToFailed(fmt.Errorf("failed to listen on %s: %w", addr, err))
		return s.LastError()
	}

	srv := &http.Server{
		Handler:           http.FileServer(http.Dir(s.cfg.Dir.String())),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.listener = listener
	s.addr = listener.Addr().String()
	s.srvMu.Unlock()

	s.AddGoroutine()
	go s.serve()

	select {
	case <-s.StartedChannel():
		s.logger.Info("preview server started", "address", s.addr, "dir", s.cfg.Dir)
		return nil
	case err := <-s.Err():
		s.TransitionToFailed(err)
		return err
	case <-startupCtx.Done():
		s.TransitionToFailed(fmt.Errorf("startup timeout: %w", startupCtx.Err()))
		return s.LastError()
	}
}

// Stop gracefully stops the server. Safe to call multiple times.
func (s *Server) Stop() error {
	if !s.TransitionToStopping() {
		s.WaitForShutdown()
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer shutdownCancel()

	var shutdownErr error
	s.srvMu.Lock()
	if s.srv != nil {
		shutdownErr = s.srv.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close() //nolint:errcheck // best-effort cleanup during shutdown
	}
	s.srvMu.Unlock()

	s.WaitForShutdown()
	s.TransitionToStopped()
	s.CloseErrChannel()
	s.logger.Info("preview server stopped")

	if shutdownErr != nil && !errors.Is(shutdownErr, http.ErrServerClosed) {
		return shutdownErr
	}
	return nil
}

// serve runs the HTTP server and reports unexpected errors.
func (s *Server) serve() {
	defer s.DoneGoroutine()

	s.TransitionToRunning()

	s.srvMu.Lock()
	srv := s.srv
	listener := s.listener
	s.srvMu.Unlock()

	if srv == nil || listener == nil {
		return
	}

	err := srv.Serve(listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		s.SendError(fmt.Errorf("serve error: %w", err))
	}
}

// Address returns the server's bound address (host:port), or the empty
// string before the server has started.
func (s *Server) Address() string {
	select {
	case <-s.StartedChannel():
		s.srvMu.Lock()
		defer s.srvMu.Unlock()
		return s.addr
	default:
		return ""
	}
}

// URL returns the http URL of the running server, or the empty string
// before the server has started.
func (s *Server) URL() string {
	addr := s.Address()
	if addr == "" {
		return ""
	}
	return "http://" + addr
}
