package usecase

import (
	"context"
	"time"

	"github.com/allisson/domainguard/internal/metrics"
	tokenDomain "github.com/allisson/domainguard/internal/token/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance operations.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	domain string,
	ttlSeconds int,
) (*tokenDomain.IssuedToken, error) {
	start := time.Now()
	token, err := t.next.Issue(ctx, domain, ttlSeconds)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_issue", status)
	t.metrics.RecordDuration(ctx, "token", "token_issue", time.Since(start), status)

	return token, err
}

// Verify records metrics for token verification operations. Invalid tokens
// count as errors even though Verify itself never fails.
func (t *tokenUseCaseWithMetrics) Verify(ctx context.Context, token string) tokenDomain.VerifyResult {
	start := time.Now()
	result := t.next.Verify(ctx, token)

	status := "success"
	if !result.Valid {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_verify", status)
	t.metrics.RecordDuration(ctx, "token", "token_verify", time.Since(start), status)

	return result
}
