// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	tokenDomain "github.com/allisson/domainguard/internal/token/domain"
)

// GenerateTokenResponse represents a freshly minted token in API responses.
// The master secret and pepper never appear in any response.
type GenerateTokenResponse struct {
	Token      string    `json:"token"`
	Domain     string    `json:"domain"`
	TTLSeconds int       `json:"ttl_seconds"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// MapIssuedTokenToResponse converts an issued token to an API response.
func MapIssuedTokenToResponse(issued *tokenDomain.IssuedToken) GenerateTokenResponse {
	return GenerateTokenResponse{
		Token:      issued.Token,
		Domain:     issued.Domain,
		TTLSeconds: issued.TTLSeconds,
		IssuedAt:   issued.IssuedAt,
		ExpiresAt:  issued.ExpiresAt,
	}
}

// VerifyTokenResponse represents a verification outcome in API responses.
type VerifyTokenResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Domain  string `json:"domain,omitempty"`
}

// MapVerifyResultToResponse converts a verification result to an API response.
func MapVerifyResultToResponse(result tokenDomain.VerifyResult) VerifyTokenResponse {
	return VerifyTokenResponse{
		Valid:   result.Valid,
		Message: result.Reason,
		Domain:  result.Domain,
	}
}
