// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/domainguard/internal/errors"
)

var (
	// domainRegex matches a bare domain name: dot-separated labels of letters,
	// digits, and hyphens. Protocol prefixes and paths are rejected.
	domainRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?)+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// DomainName validates that a string is a bare domain name without protocol prefix.
var DomainName = validation.NewStringRuleWithError(
	func(s string) bool {
		return domainRegex.MatchString(s)
	},
	validation.NewError("validation_domain_name", "must be a bare domain name without protocol"),
)
