package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tokenUsecase "github.com/allisson/domainguard/internal/token/usecase"
)

// RunVerifyToken verifies a previously minted token and writes the result in
// text or JSON format. Returns an error for invalid tokens so the process
// exits non-zero.
func RunVerifyToken(
	ctx context.Context,
	tokenUseCase tokenUsecase.TokenUseCase,
	logger *slog.Logger,
	w io.Writer,
	token string,
	format string,
) error {
	result := tokenUseCase.Verify(ctx, token)

	logger.Info("token verified",
		slog.Bool("valid", result.Valid),
		slog.String("reason", result.Reason),
	)

	if format == "json" {
		if err := writeJSON(w, result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(w, "Token is valid for %s\n", result.Domain)
	} else {
		fmt.Fprintf(w, "Token is invalid: %s\n", result.Reason)
	}

	if !result.Valid {
		return fmt.Errorf("token verification failed: %s", result.Reason)
	}
	return nil
}
