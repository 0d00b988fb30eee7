// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/domainguard/internal/validation"
)

// GenerateTokenRequest contains the parameters for minting a domain token.
// A zero TTL selects the server default.
type GenerateTokenRequest struct {
	Domain     string `json:"domain" binding:"required"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// Validate checks if the generate token request is valid.
func (r *GenerateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Domain,
			validation.Required,
			customValidation.NotBlank,
			customValidation.DomainName,
		),
		validation.Field(&r.TTLSeconds,
			validation.Min(0),
			validation.Max(86400),
		),
	)
}

// VerifyTokenRequest contains the token to verify.
type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// Validate checks if the verify token request is valid.
func (r *VerifyTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
	)
}
