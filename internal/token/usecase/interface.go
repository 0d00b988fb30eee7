// Package usecase orchestrates token issuance and verification. Issuance runs
// the full domain security check before minting anything: a token is proof
// that the domain passed every check at issuance time.
package usecase

import (
	"context"

	tokenDomain "github.com/allisson/domainguard/internal/token/domain"
)

// TokenCodec mints and verifies signed tokens.
type TokenCodec interface {
	Generate(domain string, ttlSeconds int) (string, error)
	Verify(token string) tokenDomain.VerifyResult
}

// TokenUseCase defines the token issuance and verification business logic.
type TokenUseCase interface {
	// Issue checks the domain's security and, only when every check passes,
	// mints a token bound to it. A zero or negative ttlSeconds selects the
	// configured default TTL.
	Issue(ctx context.Context, domain string, ttlSeconds int) (*tokenDomain.IssuedToken, error)
	// Verify validates a token offline. It never returns an error: the result
	// carries the outcome and a reason.
	Verify(ctx context.Context, token string) tokenDomain.VerifyResult
}
