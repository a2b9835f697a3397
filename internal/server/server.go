// SPDX-License-Identifier: MIT

// Package server exposes the calculator over a small JSON API:
//
//	GET  /health           liveness
//	GET  /metrics          Prometheus exposition
//	GET  /metrics/json     running totals
//	GET  /v1/ops           supported operations
//	POST /v1/matrix/:op    run one operation
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/katalvlaran/matcalc/internal/config"
	"github.com/katalvlaran/matcalc/internal/logging"
	"github.com/katalvlaran/matcalc/internal/monitoring"
	"github.com/katalvlaran/matcalc/internal/service"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP server and dependencies.
type Server struct {
	router  *gin.Engine
	http    *http.Server
	calc    *service.Calculator
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New wires the router, middleware and handlers. The gin mode is left to
// the caller (gin.SetMode is process-wide).
func New(cfg *config.Config, calc *service.Calculator, logger *logging.Logger, metrics *monitoring.Metrics) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(AccessLog(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(CORS(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(GlobalRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	s := &Server{
		router:  router,
		calc:    calc,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", s.metricsJSON)

	v1 := router.Group("/v1")
	v1.GET("/ops", s.listOps)
	v1.POST("/matrix/:op", s.calculate)

	s.http = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return s
}

// Handler returns the root handler (used by tests with httptest).
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	_ = s.logger.Sync()

	return nil
}
