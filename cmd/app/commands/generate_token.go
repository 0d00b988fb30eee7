package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tokenUsecase "github.com/allisson/domainguard/internal/token/usecase"
)

// RunGenerateToken verifies a domain's security posture and mints a signed
// token for it, writing the result in text or JSON format.
//
// Requirements: MASTER_SECRET must be set.
func RunGenerateToken(
	ctx context.Context,
	tokenUseCase tokenUsecase.TokenUseCase,
	logger *slog.Logger,
	w io.Writer,
	domain string,
	ttlSeconds int,
	format string,
) error {
	if ttlSeconds < 0 {
		return fmt.Errorf("ttl must be a positive number, got: %d", ttlSeconds)
	}

	logger.Info("generating token",
		slog.String("domain", domain),
		slog.Int("ttl_seconds", ttlSeconds),
	)

	issued, err := tokenUseCase.Issue(ctx, domain, ttlSeconds)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	if format == "json" {
		return writeJSON(w, issued)
	}

	fmt.Fprintf(w, "Token issued for %s (TTL: %ds)\n", issued.Domain, issued.TTLSeconds)
	fmt.Fprintf(w, "Expires at: %s\n", issued.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "%s\n", issued.Token)
	return nil
}
