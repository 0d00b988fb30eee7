// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/domainguard/internal/validation"
)

// maxBatchSize bounds one batch request so a single call cannot fan out an
// unbounded number of network probes.
const maxBatchSize = 50

// CheckDomainRequest contains the parameters for a single domain check.
type CheckDomainRequest struct {
	Domain         string `json:"domain" binding:"required"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	SkipWhitelist  bool   `json:"skip_whitelist"`
}

// Validate checks if the check domain request is valid.
func (r *CheckDomainRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Domain,
			validation.Required,
			customValidation.NotBlank,
			customValidation.DomainName,
		),
		validation.Field(&r.TimeoutSeconds,
			validation.Min(0),
			validation.Max(60),
		),
	)
}

// CheckDomainsRequest contains the parameters for a batch domain check.
type CheckDomainsRequest struct {
	Domains        []string `json:"domains" binding:"required"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	SkipWhitelist  bool     `json:"skip_whitelist"`
}

// Validate checks if the batch check request is valid.
func (r *CheckDomainsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Domains,
			validation.Required,
			validation.Length(1, maxBatchSize),
			validation.Each(customValidation.NotBlank, customValidation.DomainName),
		),
		validation.Field(&r.TimeoutSeconds,
			validation.Min(0),
			validation.Max(60),
		),
	)
}
