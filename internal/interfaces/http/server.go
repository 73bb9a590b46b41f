// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/metrics"
)

// Dependencies are the collaborators the HTTP server is built from
type Dependencies struct {
	Logger   *logrus.Logger
	Services routes.Services
	Store    storage.Store
	Limiter  middleware.Limiter
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	deps       Dependencies
	logger     logrus.FieldLogger
	gin        *gin.Engine
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer creates a new HTTP server instance with its routes registered
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:    cfg,
		deps:      deps,
		logger:    deps.Logger.WithField("component", "http"),
		gin:       gin.New(),
		startedAt: time.Now(),
	}
	if s.deps.Limiter == nil {
		s.deps.Limiter = middleware.NewMemoryLimiter()
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"api_base": fmt.Sprintf("http://localhost:%s/api/v1", s.config.Server.Port),
		"health":   fmt.Sprintf("http://localhost:%s/health", s.config.Server.Port),
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(middleware.Recovery(s.logger))
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.deps.Logger))
	s.gin.Use(middleware.Metrics(s.deps.Metrics))
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RateLimit(s.config, s.deps.Limiter, s.logger))
	s.gin.Use(middleware.RequestSizeLimit(s.config.Security.MaxBodyBytes))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	if s.config.Metrics.Enabled && s.deps.Gatherer != nil {
		s.gin.GET(s.config.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, s.deps.Services, s.config, s.logger)

	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     "Storefront API",
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"products": "/api/v1/products",
					"cart":     "/api/v1/cart",
					"wishlist": "/api/v1/wishlist",
					"checkout": "/api/v1/checkout",
					"orders":   "/api/v1/orders",
					"wallet":   "/api/v1/wallet",
					"account":  "/api/v1/account",
					"events":   "/api/v1/events",
				},
			})
		})
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.deps.Store.Health(ctx); err != nil {
		s.logger.WithError(err).Warn("Store health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "store unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
		"store":       s.config.Store.Driver,
	})
}

// readinessCheck reports whether the catalog has loaded
func (s *Server) readinessCheck(c *gin.Context) {
	body := gin.H{
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	}

	if !s.deps.Services.Catalog.Ready() {
		body["status"] = "not_ready"
		if err := s.deps.Services.Catalog.LoadError(); err != nil {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	body["status"] = "ready"
	c.JSON(http.StatusOK, body)
}
