// Package server exposes the tangency engine over HTTP.
//
// Routes:
//
//	POST /tool                    tool call, body {"tool": ..., "params": {...}}
//	GET  /schema                  MCP tool schema
//	GET  /health                  liveness
//	POST /v1/polynomial/tangent   typed polynomial tangent
//	POST /v1/circle/tangent       typed circle tangent
//	POST /v1/ellipse/tangent      typed ellipse tangent, by x or by t
//	GET  <metrics.path>           Prometheus exposition, when enabled
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/njchilds90/gotangency/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Server wires the handlers, middleware and metrics registry. It holds no
// per-request state and is safe for concurrent use.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	engine   *gin.Engine
	registry *prometheus.Registry
	metrics  *toolMetrics
}

// New builds a Server from cfg. A nil logger uses slog.Default().
func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		engine:   gin.New(),
		registry: reg,
		metrics:  newToolMetrics(reg),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.engine
	e.Use(
		requestIDMiddleware(),
		recoveryMiddleware(s.logger),
		accessLogMiddleware(s.logger),
		bodyLimitMiddleware(s.cfg.Server.MaxBodyBytes),
	)
	if s.cfg.Server.RateLimit > 0 {
		e.Use(rateLimitMiddleware(s.cfg.Server.RateLimit, s.cfg.Server.RateBurst))
	}

	e.POST("/tool", s.HandleTool)
	e.GET("/schema", s.HandleSchema)
	e.GET("/health", s.HandleHealth)

	v1 := e.Group("/v1")
	v1.POST("/polynomial/tangent", s.HandlePolynomialTangent)
	v1.POST("/circle/tangent", s.HandleCircleTangent)
	v1.POST("/ellipse/tangent", s.HandleEllipseTangent)

	if s.cfg.Metrics.Enabled {
		e.GET(s.cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on cfg.Server.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.Server.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       s.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down", "timeout", s.cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
