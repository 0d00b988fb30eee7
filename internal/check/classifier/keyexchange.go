package classifier

import (
	"github.com/allisson/domainguard/internal/check/domain"
)

// IsKeyExchangeError reports whether the failure looks like a key-exchange
// problem at all. Errors without an indicator keyword are certificate
// problems and must not reach ClassifyKeyExchangeError; this gate prevents
// mislabeling unrelated certificate errors as key-exchange issues.
func IsKeyExchangeError(err error) bool {
	return domain.HasKeyExchangeIndicator(err.Error())
}

// ClassifyKeyExchangeError maps a key-exchange failure to a KeyExchangeError.
// Call only after IsKeyExchangeError returned true; an error that matches an
// indicator but none of the specific rules still yields the generic kind.
func ClassifyKeyExchangeError(err error, domainName string) *domain.KeyExchangeError {
	kind, detail, ok := domain.MatchKeyExchangeKind(err.Error())
	if !ok {
		kind = domain.KeyExchangeGeneric
	}
	if detail == "" {
		detail = err.Error()
	}
	return &domain.KeyExchangeError{Kind: kind, Domain: domainName, Detail: detail}
}
