// Package domain defines the token types for the verification service.
package domain

import "time"

// IssuedToken is a freshly minted domain-bound token.
type IssuedToken struct {
	Token      string    `json:"token"`
	Domain     string    `json:"domain"`
	TTLSeconds int       `json:"ttl_seconds"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// VerifyResult is the outcome of a token verification. Verification never
// errors: malformed, expired, and forged tokens all produce a result with
// Valid=false and a human-readable reason.
//
// Domain is populated only when the signature checked out or the token merely
// expired. A forged token never reveals the domain it claims.
type VerifyResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
	Domain string `json:"domain,omitempty"`
}
