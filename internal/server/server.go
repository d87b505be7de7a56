// Package server streams simulation snapshots over HTTP and websockets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/zeusync/torophy/internal/core/observability/log"
)

// Config holds server configuration
type Config struct {
	ListenAddr      string
	WriteTimeout    time.Duration
	SendBuffer      int
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		WriteTimeout:    5 * time.Second,
		SendBuffer:      16,
		ShutdownTimeout: 5 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("%w: send buffer must be positive, got %d", ErrInvalidConfig, c.SendBuffer)
	}
	if c.WriteTimeout < 0 || c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}

// Server serves the snapshot stream of a single hub.
type Server struct {
	config Config
	hub    *Hub
	logger log.Log

	running atomic.Bool
	addr    atomic.Value // net.Addr
}

func NewServer(config Config, hub *Hub, logger log.Log) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}

	server := &Server{
		config: config,
		hub:    hub,
		logger: logger.With(log.String("component", "server")),
	}

	server.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.Int("send_buffer", config.SendBuffer))

	return server, nil
}

// Addr returns the bound address once Run is listening, nil before.
func (s *Server) Addr() net.Addr {
	addr, _ := s.addr.Load().(net.Addr)
	return addr
}

// Run listens and serves until ctx is cancelled, then shuts down gracefully
// and closes the hub. A cancelled context is a clean exit.
func (s *Server) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}
	defer s.running.Store(false)

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.addr.Store(listener.Addr())

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))

	select {
	case err = <-serveErr:
		s.hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Error("Server failed", log.Error(err))
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping server")
	// hijacked websocket connections are not tracked by Shutdown
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Graceful shutdown failed", log.Error(err))
		_ = httpServer.Close()
	}
	<-serveErr

	s.logger.Info("Server stopped")
	return nil
}
