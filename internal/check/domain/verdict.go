// Package domain defines the typed security verdicts produced by domain checks.
// Every network or TLS failure observed during a check is mapped to exactly one
// of these error types; classifiers never swallow an error or reduce it to a
// bare boolean.
package domain

import (
	"fmt"

	apperrors "github.com/allisson/domainguard/internal/errors"
)

// CertKind identifies the specific certificate problem detected.
type CertKind string

const (
	CertExpired          CertKind = "expired"
	CertHostnameMismatch CertKind = "hostname-mismatch"
	CertSelfSigned       CertKind = "self-signed"
	CertUntrustedRoot    CertKind = "untrusted-root"
	CertGeneric          CertKind = "generic"
)

// KeyExchangeKind identifies the specific key-exchange weakness detected.
type KeyExchangeKind string

const (
	KeyExchangeSmallKey         KeyExchangeKind = "small-key"
	KeyExchangeHandshakeFailure KeyExchangeKind = "handshake-failure"
	KeyExchangeSmallSubgroup    KeyExchangeKind = "small-subgroup"
	KeyExchangeCompositeModulus KeyExchangeKind = "composite-modulus"
	KeyExchangeGeneric          KeyExchangeKind = "generic"
)

// HTTPKind identifies the specific insecure-HTTP condition detected.
type HTTPKind string

const (
	HTTPOnly              HTTPKind = "http-only"
	HTTPDowngradeRedirect HTTPKind = "downgrade-redirect"
)

// NotWhitelistedError indicates the domain is absent from the allowed domains list.
type NotWhitelistedError struct {
	Domain string
}

func (e *NotWhitelistedError) Error() string {
	return fmt.Sprintf("domain '%s' is not in the government domains list", e.Domain)
}

func (e *NotWhitelistedError) Code() string { return "domain_not_whitelisted" }

func (e *NotWhitelistedError) Unwrap() error { return apperrors.ErrForbidden }

// CertificateError indicates the domain presented an invalid certificate.
type CertificateError struct {
	Kind CertKind
	URL  string
	// Detail carries the original error text for the generic kind.
	Detail string
}

func (e *CertificateError) Error() string {
	switch e.Kind {
	case CertExpired:
		return fmt.Sprintf("certificate has expired for %s", e.URL)
	case CertHostnameMismatch:
		return fmt.Sprintf("certificate hostname mismatch for %s", e.URL)
	case CertSelfSigned:
		return fmt.Sprintf("self-signed certificate detected for %s", e.URL)
	case CertUntrustedRoot:
		if e.Detail != "" {
			return fmt.Sprintf("untrusted root certificate for %s: %s", e.URL, e.Detail)
		}
		return fmt.Sprintf("untrusted root certificate for %s", e.URL)
	default:
		return fmt.Sprintf("certificate error for %s: %s", e.URL, e.Detail)
	}
}

func (e *CertificateError) Code() string { return "certificate_invalid" }

func (e *CertificateError) Unwrap() error { return apperrors.ErrRejected }

// KeyExchangeError indicates the domain negotiates weak key-exchange parameters.
type KeyExchangeError struct {
	Kind   KeyExchangeKind
	Domain string
	// Detail carries the original error text where the kind alone is ambiguous.
	Detail string
}

func (e *KeyExchangeError) Error() string {
	switch e.Kind {
	case KeyExchangeSmallKey:
		return fmt.Sprintf(
			"domain %s uses weak Diffie-Hellman key exchange parameters (%s)",
			e.Domain, e.Detail,
		)
	case KeyExchangeHandshakeFailure:
		return fmt.Sprintf(
			"domain %s TLS handshake failed, possibly due to weak key exchange parameters: %s",
			e.Domain, e.Detail,
		)
	case KeyExchangeSmallSubgroup:
		return fmt.Sprintf(
			"domain %s uses Diffie-Hellman parameters vulnerable to small subgroup attacks",
			e.Domain,
		)
	case KeyExchangeCompositeModulus:
		return fmt.Sprintf(
			"domain %s uses Diffie-Hellman parameters with composite modulus",
			e.Domain,
		)
	default:
		return fmt.Sprintf("domain %s has key exchange or cipher suite issues: %s", e.Domain, e.Detail)
	}
}

func (e *KeyExchangeError) Code() string { return "weak_key_exchange" }

func (e *KeyExchangeError) Unwrap() error { return apperrors.ErrRejected }

// InsecureHTTPError indicates the domain serves or redirects to plain HTTP.
type InsecureHTTPError struct {
	Kind   HTTPKind
	Domain string
	// Detail describes the offending URL or the original HTTPS failure.
	Detail string
}

func (e *InsecureHTTPError) Error() string {
	switch e.Kind {
	case HTTPOnly:
		return fmt.Sprintf(
			"domain %s only accepts insecure HTTP connections. HTTPS failed with: %s",
			e.Domain, e.Detail,
		)
	default:
		return fmt.Sprintf("domain %s redirects through insecure HTTP: %s", e.Domain, e.Detail)
	}
}

func (e *InsecureHTTPError) Code() string { return "insecure_http" }

func (e *InsecureHTTPError) Unwrap() error { return apperrors.ErrRejected }

// UnreachableError indicates both the HTTPS attempt and the HTTP fallback failed.
type UnreachableError struct {
	Domain   string
	HTTPSErr string
	HTTPErr  string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf(
		"domain %s is unreachable. HTTPS error: %s. HTTP error: %s",
		e.Domain, e.HTTPSErr, e.HTTPErr,
	)
}

func (e *UnreachableError) Code() string { return "domain_unreachable" }

func (e *UnreachableError) Unwrap() error { return apperrors.ErrUnavailable }
