// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type Config struct {
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"`

	AllowedOrigins []string `json:"allowedOrigins"`
}

func NewDefaultConfig() Config {
	return Config{
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		AllowedOrigins:    []string{"*"},
	}
}

// Server serves a handler behind CORS and gzip until shut down.
type Server struct {
	log      logging.Logger
	cfg      Config
	srv      *http.Server
	listener net.Listener
}

func New(log logging.Logger, listener net.Listener, cfg Config, handler http.Handler) *Server {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(handler)

	log.Info("API created",
		zap.Stringer("address", listener.Addr()),
		zap.Strings("allowedOrigins", cfg.AllowedOrigins),
	)
	return &Server{
		log: log,
		cfg: cfg,
		srv: &http.Server{
			Handler:           gziphandler.GzipHandler(corsHandler),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		listener: listener,
	}
}

// Dispatch blocks until the server stops. A graceful [Shutdown] is not
// reported as an error.
func (s *Server) Dispatch() error {
	err := s.srv.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	err := s.srv.Shutdown(ctx)
	cancel()

	// Force the close if the shutdown timed out
	_ = s.srv.Close()
	s.log.Info("API stopped")
	return err
}
