package service

import (
	"context"
	"time"

	"github.com/allisson/domainguard/internal/metrics"
)

// checkerWithMetrics decorates Checker with metrics instrumentation.
type checkerWithMetrics struct {
	next    Checker
	metrics metrics.BusinessMetrics
}

// NewCheckerWithMetrics wraps a Checker with metrics recording.
func NewCheckerWithMetrics(checker Checker, m metrics.BusinessMetrics) Checker {
	return &checkerWithMetrics{
		next:    checker,
		metrics: m,
	}
}

// Check records metrics for single-domain security checks.
func (c *checkerWithMetrics) Check(ctx context.Context, domainName string, opts Options) error {
	start := time.Now()
	err := c.next.Check(ctx, domainName, opts)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "check", "domain_check", status)
	c.metrics.RecordDuration(ctx, "check", "domain_check", time.Since(start), status)

	return err
}

// CheckBatch records metrics for batch security checks.
func (c *checkerWithMetrics) CheckBatch(
	ctx context.Context,
	domains []string,
	opts Options,
) map[string]error {
	start := time.Now()
	results := c.next.CheckBatch(ctx, domains, opts)

	status := "success"
	for _, err := range results {
		if err != nil {
			status = "error"
			break
		}
	}

	c.metrics.RecordOperation(ctx, "check", "domain_check_batch", status)
	c.metrics.RecordDuration(ctx, "check", "domain_check_batch", time.Since(start), status)

	return results
}
