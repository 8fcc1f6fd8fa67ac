// Package devserver exposes the compiler over HTTP for editor and
// browser tooling: POST /compile compiles posted source once, GET /watch
// upgrades to a WebSocket that recompiles on every message the client
// sends over the same connection. It has no file-watching of its own;
// the caller decides when to post new source, and optionally attaches a
// watch.ReloadServer on GET /reload for filesystem-driven push updates.
package devserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tova-lang/tova/internal/watch"
)

// Config holds the server's listen address and timeouts.
type Config struct {
	Address           string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns sane defaults for local development.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":4417",
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Server is the dev-tooling HTTP server.
type Server struct {
	httpServer *http.Server
	config     *Config
	listener   net.Listener
	mux        chi.Router
	reload     *watch.ReloadServer
}

// New builds a Server with routes wired to a fresh Compiler.
func New(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	mux := chi.NewRouter()
	svc := &service{compiler: NewCompiler()}
	svc.routes(mux)

	return &Server{
		config: config,
		mux:    mux,
		httpServer: &http.Server{
			Addr:              config.Address,
			Handler:           mux,
			ReadTimeout:       config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
	}
}

// AttachReload wires a ReloadServer's WebSocket handler onto GET /reload.
// Browsers connect here to receive push notifications when a watched file
// changes; it is independent of /watch, which only reacts to what the
// client itself posts over the socket.
func (s *Server) AttachReload(rs *watch.ReloadServer) {
	s.reload = rs
	s.mux.Get("/reload", rs.HandleWebSocket)
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("devserver: listen: %w", err)
	}
	s.listener = listener
	return s.httpServer.Serve(listener)
}

// Addr returns the address the server is bound to, once listening.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Address
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.reload != nil {
		s.reload.Close()
	}
	return s.httpServer.Shutdown(ctx)
}
