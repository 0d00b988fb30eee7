// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	checkDomain "github.com/allisson/domainguard/internal/check/domain"
	checkHTTP "github.com/allisson/domainguard/internal/check/http"
	"github.com/allisson/domainguard/internal/check/inspector"
	checkService "github.com/allisson/domainguard/internal/check/service"
	"github.com/allisson/domainguard/internal/config"
	"github.com/allisson/domainguard/internal/http"
	"github.com/allisson/domainguard/internal/httpclient"
	"github.com/allisson/domainguard/internal/metrics"
	"github.com/allisson/domainguard/internal/refresher"
	tokenHTTP "github.com/allisson/domainguard/internal/token/http"
	tokenService "github.com/allisson/domainguard/internal/token/service"
	tokenUsecase "github.com/allisson/domainguard/internal/token/usecase"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access.
type Container struct {
	config *config.Config

	logger          *slog.Logger
	httpClient      *httpclient.Client
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	whitelist       *checkDomain.Whitelist
	checker         checkService.Checker
	chainValidator  checkService.ChainValidator
	tokenUseCase    tokenUsecase.TokenUseCase
	httpServer      *http.Server
	metricsServer   *http.MetricsServer
	refresher       *refresher.Refresher

	mu                  sync.Mutex
	loggerInit          sync.Once
	httpClientInit      sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	whitelistInit       sync.Once
	checkerInit         sync.Once
	chainValidatorInit  sync.Once
	tokenUseCaseInit    sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	refresherInit       sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// HTTPClient returns the pooled outbound HTTP client.
func (c *Container) HTTPClient() *httpclient.Client {
	c.httpClientInit.Do(func() {
		c.httpClient = httpclient.New(httpclient.Config{
			MaxConnections:     c.config.HTTPClientMaxConnections,
			MaxIdleConnections: c.config.HTTPClientMaxIdleConnections,
			IdleTimeout:        c.config.HTTPClientIdleTimeout,
		})
	})
	return c.httpClient
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled this is a no-op implementation.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Whitelist returns the allowed domains list loaded from the configured file.
func (c *Container) Whitelist() (*checkDomain.Whitelist, error) {
	var err error
	c.whitelistInit.Do(func() {
		c.whitelist, err = c.initWhitelist()
		if err != nil {
			c.initErrors["whitelist"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["whitelist"]; exists {
		return nil, storedErr
	}
	return c.whitelist, nil
}

// Checker returns the domain security checker instance.
func (c *Container) Checker() (checkService.Checker, error) {
	var err error
	c.checkerInit.Do(func() {
		c.checker, err = c.initChecker()
		if err != nil {
			c.initErrors["checker"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["checker"]; exists {
		return nil, storedErr
	}
	return c.checker, nil
}

// ChainValidator returns the root CA chain validator instance.
func (c *Container) ChainValidator() checkService.ChainValidator {
	c.chainValidatorInit.Do(func() {
		fetcher := inspector.New(c.Logger())
		c.chainValidator = checkService.NewRootCAChainValidator(fetcher, c.config.CheckTimeout)
	})
	return c.chainValidator
}

// TokenUseCase returns the token use case instance.
func (c *Container) TokenUseCase() (tokenUsecase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer(version string) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(version)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Refresher returns the background token refresher instance.
func (c *Container) Refresher() (*refresher.Refresher, error) {
	var err error
	c.refresherInit.Do(func() {
		c.refresher, err = c.initRefresher()
		if err != nil {
			c.initErrors["refresher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["refresher"]; exists {
		return nil, storedErr
	}
	return c.refresher, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.httpClient != nil {
		c.httpClient.Close()
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initWhitelist loads the allowed domains file. A missing file is fatal when
// enforcement is on; otherwise the service starts with an empty list.
func (c *Container) initWhitelist() (*checkDomain.Whitelist, error) {
	whitelist, err := checkDomain.LoadWhitelist(c.config.WhitelistPath)
	if err != nil {
		if c.config.WhitelistEnforced {
			return nil, fmt.Errorf("failed to load whitelist: %w", err)
		}
		c.Logger().Warn("whitelist unavailable, continuing without enforcement",
			slog.String("path", c.config.WhitelistPath),
			slog.Any("error", err),
		)
		return checkDomain.NewWhitelist(nil), nil
	}

	c.Logger().Info("whitelist loaded",
		slog.String("path", c.config.WhitelistPath),
		slog.Int("domains", whitelist.Len()),
	)
	return whitelist, nil
}

func (c *Container) initChecker() (checkService.Checker, error) {
	whitelist, err := c.Whitelist()
	if err != nil {
		return nil, fmt.Errorf("failed to get whitelist for checker: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for checker: %w", err)
	}

	checker := checkService.NewSecurityCheck(
		c.HTTPClient(),
		whitelist,
		c.Logger(),
		c.config.CheckTimeout,
		c.config.WhitelistEnforced,
		c.config.CheckMaxConcurrency,
	)

	return checkService.NewCheckerWithMetrics(checker, businessMetrics), nil
}

func (c *Container) initTokenUseCase() (tokenUsecase.TokenUseCase, error) {
	if c.config.MasterSecret == "" {
		return nil, fmt.Errorf("MASTER_SECRET must be configured for token operations")
	}

	checker, err := c.Checker()
	if err != nil {
		return nil, fmt.Errorf("failed to get checker for token use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	codec := tokenService.NewCodec(c.config.MasterSecret)
	useCase := tokenUsecase.NewTokenUseCase(
		codec,
		checker,
		c.ChainValidator(),
		c.Logger(),
		c.config.DefaultTTLSeconds,
	)

	return tokenUsecase.NewTokenUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initHTTPServer(version string) (*http.Server, error) {
	logger := c.Logger()

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}

	checker, err := c.Checker()
	if err != nil {
		return nil, fmt.Errorf("failed to get checker for http server: %w", err)
	}

	whitelist, err := c.Whitelist()
	if err != nil {
		return nil, fmt.Errorf("failed to get whitelist for http server: %w", err)
	}

	routerCfg := http.RouterConfig{
		TokenHandler:      tokenHTTP.NewTokenHandler(tokenUseCase, logger),
		CheckHandler:      checkHTTP.NewCheckHandler(checker, logger),
		CORSMiddleware:    http.CreateCORSMiddleware(c.config.CORSEnabled, c.config.CORSAllowOrigins, logger),
		Version:           version,
		WhitelistSize:     whitelist.Len(),
		WhitelistEnforced: c.config.WhitelistEnforced,
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		routerCfg.MetricsMiddleware = metrics.HTTPMetricsMiddleware(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	}

	if c.config.RateLimitTokenEnabled {
		routerCfg.TokenRateLimit = http.TokenRateLimitMiddleware(
			c.config.RateLimitTokenRequestsPerSec,
			c.config.RateLimitTokenBurst,
			logger,
		)
	}

	return http.NewServer(c.config.ServerHost, c.config.ServerPort, logger, routerCfg), nil
}

func (c *Container) initRefresher() (*refresher.Refresher, error) {
	if c.config.RefresherDomain == "" {
		return nil, fmt.Errorf("REFRESHER_DOMAIN must be configured for the refresher")
	}

	refresherCfg := refresher.Config{
		BaseURL:        c.config.RefresherBaseURL,
		Domain:         c.config.RefresherDomain,
		OutputPath:     c.config.RefresherOutputPath,
		Interval:       c.config.RefresherInterval,
		RequestTimeout: c.config.CheckTimeout,
	}

	return refresher.New(refresherCfg, c.HTTPClient(), c.Logger()), nil
}
