// Package server owns the process lifecycle: it runs the HTTP server and
// the background workers, and shuts everything down gracefully on SIGINT,
// SIGTERM or SIGQUIT.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/finpay/gateway/internal/config"
	"github.com/finpay/gateway/internal/logger"
)

// Worker is a background loop that runs until its context is cancelled.
// The rate limiter's bucket eviction and the refresh token janitor both
// satisfy it.
type Worker interface {
	Run(ctx context.Context)
}

type Server struct {
	httpServer *http.Server
	workers    []Worker
	logger     *logger.Logger
}

// NewServer builds the HTTP server around the given router and registers
// the background workers started alongside it.
func NewServer(router http.Handler, cfg config.Server, log *logger.Logger, workers ...Worker) *Server {
	log.Info().Str("address", cfg.HTTPAddress).Msg("creating new server")

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      router,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
		workers: workers,
		logger:  log,
	}
}

// RunServer serves until a stop signal arrives, then drains in-flight
// requests and stops the workers.
func (s *Server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	for _, worker := range s.workers {
		go worker.Run(ctx)
	}

	idleConnectionsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()

		if err := s.httpServer.Shutdown(context.Background()); err != nil {
			s.logger.Err(err).Msg("HTTP server Shutdown")
		}

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("launching HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Err(err).Msg("HTTP server ListenAndServe")
	}

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shutdown gracefully")
}
