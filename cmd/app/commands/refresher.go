package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/allisson/domainguard/internal/app"
	"github.com/allisson/domainguard/internal/config"
)

// RunRefresher runs the background token refresher until interrupted.
// The refresher periodically requests a fresh token from the verification
// service and writes it to the configured output file. Non-empty domain and
// output arguments override the configured values.
func RunRefresher(ctx context.Context, domain, outputPath string) error {
	// Load configuration
	cfg := config.Load()
	if domain != "" {
		cfg.RefresherDomain = domain
	}
	if outputPath != "" {
		cfg.RefresherOutputPath = outputPath
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting refresher",
		slog.String("domain", cfg.RefresherDomain),
		slog.String("output_path", cfg.RefresherOutputPath),
		slog.Duration("interval", cfg.RefresherInterval),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	refresher, err := container.Refresher()
	if err != nil {
		return fmt.Errorf("failed to initialize refresher: %w", err)
	}

	// Run until interrupted
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("refresher error: %w", err)
	}

	logger.Info("refresher stopped")
	return nil
}
