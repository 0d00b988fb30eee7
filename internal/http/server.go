// Package http provides the HTTP server and routing for the verification API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkHTTP "github.com/allisson/domainguard/internal/check/http"
	tokenHTTP "github.com/allisson/domainguard/internal/token/http"
)

// RouterConfig carries the handlers and optional middleware for the API router.
// Nil middleware entries are skipped.
type RouterConfig struct {
	TokenHandler *tokenHTTP.TokenHandler
	CheckHandler *checkHTTP.CheckHandler

	CORSMiddleware    gin.HandlerFunc
	MetricsMiddleware gin.HandlerFunc
	TokenRateLimit    gin.HandlerFunc
	Version           string
	WhitelistSize     int
	WhitelistEnforced bool
}

// Server represents the HTTP server for the verification API.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the full API router.
func NewServer(host string, port int, logger *slog.Logger, routerCfg RouterConfig) *Server {
	s := &Server{logger: logger}
	s.router = s.setupRouter(routerCfg)
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}
	if cfg.CORSMiddleware != nil {
		router.Use(cfg.CORSMiddleware)
	}

	router.GET("/", s.rootHandler(cfg))
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler(cfg))

	v1 := router.Group("/v1")
	{
		// Token issuance is the expensive, unauthenticated entry point and
		// the only route behind the per-IP rate limit.
		generate := v1.Group("")
		if cfg.TokenRateLimit != nil {
			generate.Use(cfg.TokenRateLimit)
		}
		generate.POST("/generate-token", cfg.TokenHandler.GenerateHandler)

		v1.POST("/verify-token", cfg.TokenHandler.VerifyHandler)
		v1.POST("/check-domain", cfg.CheckHandler.CheckDomainHandler)
		v1.POST("/check-domains", cfg.CheckHandler.CheckDomainsHandler)
	}

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

func (s *Server) rootHandler(cfg RouterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "domainguard",
			"version": cfg.Version,
			"endpoints": []string{
				"POST /v1/generate-token",
				"POST /v1/verify-token",
				"POST /v1/check-domain",
				"POST /v1/check-domains",
			},
		})
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(cfg RouterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		whitelistStatus := "ok"
		if cfg.WhitelistEnforced && cfg.WhitelistSize == 0 {
			whitelistStatus = "empty"
		}

		status := http.StatusOK
		readiness := "ready"
		if whitelistStatus != "ok" {
			status = http.StatusServiceUnavailable
			readiness = "not_ready"
		}

		c.JSON(status, gin.H{
			"status": readiness,
			"components": gin.H{
				"whitelist": whitelistStatus,
			},
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
