package usecase

import (
	"context"
	"log/slog"
	"time"

	checkService "github.com/allisson/domainguard/internal/check/service"
	tokenDomain "github.com/allisson/domainguard/internal/token/domain"
)

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	codec          TokenCodec
	checker        checkService.Checker
	chainValidator checkService.ChainValidator
	logger         *slog.Logger
	defaultTTL     int
	now            func() time.Time
}

// NewTokenUseCase creates the token use case.
func NewTokenUseCase(
	codec TokenCodec,
	checker checkService.Checker,
	chainValidator checkService.ChainValidator,
	logger *slog.Logger,
	defaultTTL int,
) TokenUseCase {
	return &tokenUseCase{
		codec:          codec,
		checker:        checker,
		chainValidator: chainValidator,
		logger:         logger,
		defaultTTL:     defaultTTL,
		now:            time.Now,
	}
}

// Issue runs the unified security check and the root CA chain validation, then
// mints a token. Any failed check aborts issuance with the typed verdict.
func (u *tokenUseCase) Issue(
	ctx context.Context,
	domain string,
	ttlSeconds int,
) (*tokenDomain.IssuedToken, error) {
	if ttlSeconds <= 0 {
		ttlSeconds = u.defaultTTL
	}

	if err := u.checker.Check(ctx, domain, checkService.Options{}); err != nil {
		u.logger.Info("token issuance refused",
			slog.String("domain", domain),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := u.chainValidator.Validate(ctx, domain); err != nil {
		u.logger.Info("token issuance refused by chain validation",
			slog.String("domain", domain),
			slog.Any("error", err),
		)
		return nil, err
	}

	token, err := u.codec.Generate(domain, ttlSeconds)
	if err != nil {
		return nil, err
	}

	issuedAt := u.now().UTC()
	u.logger.Info("token issued",
		slog.String("domain", domain),
		slog.Int("ttl_seconds", ttlSeconds),
	)

	return &tokenDomain.IssuedToken{
		Token:      token,
		Domain:     domain,
		TTLSeconds: ttlSeconds,
		IssuedAt:   issuedAt,
		ExpiresAt:  issuedAt.Add(time.Duration(ttlSeconds) * time.Second),
	}, nil
}

// Verify delegates to the codec. No network activity is involved.
func (u *tokenUseCase) Verify(ctx context.Context, token string) tokenDomain.VerifyResult {
	result := u.codec.Verify(token)
	if !result.Valid {
		u.logger.Debug("token rejected", slog.String("reason", result.Reason))
	}
	return result
}
