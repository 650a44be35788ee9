package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/complianceworks/sanctions-screening-backend/internal/infrastructure/config"
	"github.com/complianceworks/sanctions-screening-backend/internal/infrastructure/telemetry"
	"github.com/complianceworks/sanctions-screening-backend/internal/listfeed"
	"github.com/complianceworks/sanctions-screening-backend/internal/service/screening"
)

// Server is the HTTP surface of the screening engine
type Server struct {
	config     *config.Config
	httpServer *http.Server
	handler    *Handler
	logger     *slog.Logger
	limiter    *ipRateLimiter
}

func NewServer(cfg *config.Config, logger *slog.Logger, service *screening.Service, loader *listfeed.Loader) *Server {
	handler := NewHandler(logger, service, loader, cfg.Version)
	tracer := telemetry.NewTracer("api.rest")
	limiter := newIPRateLimiter(
		cfg.Server.RateLimit.RequestsPerSecond,
		cfg.Server.RateLimit.BurstSize,
	)

	middlewares := []Middleware{
		requestIDMiddleware,
		loggingMiddleware,
		metricsMiddleware,
		tracingMiddleware(tracer),
		recoveryMiddleware,
		rateLimitMiddleware(limiter),
		timeoutMiddleware(cfg.Server.WriteTimeout),
	}

	server := &Server{
		config:  cfg,
		handler: handler,
		logger:  logger,
		limiter: limiter,
	}

	var h http.Handler = server.setupRoutes()
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	server.httpServer = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        h,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	return server
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handler.handleLiveness)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/v1/screen", s.handler.handleScreen)
	mux.HandleFunc("POST /api/v1/screen/bulk", s.handler.handleScreenBulk)
	mux.HandleFunc("GET /api/v1/health", s.handler.handleHealth)
	mux.HandleFunc("GET /api/v1/lists", s.handler.handleLists)
	mux.HandleFunc("POST /api/v1/index/rebuild", s.handler.handleRebuildIndex)

	return mux
}

// Start serves until an error or a termination signal, then shuts down
// gracefully.
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		"address", s.httpServer.Addr,
		"environment", s.config.Environment,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests within the configured grace period
// and stops the rate limiter's sweep goroutine.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")
	s.limiter.close()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
