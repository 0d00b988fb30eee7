// Package classifier turns raw transport and TLS failures into typed security
// verdicts. Classifiers are pure: they inspect an observed error or response
// and never perform network I/O themselves.
package classifier

import (
	"bytes"
	"crypto/x509"

	"github.com/allisson/domainguard/internal/check/domain"
	apperrors "github.com/allisson/domainguard/internal/errors"
)

// ClassifyCertificateError maps a TLS-layer failure to a CertificateError.
//
// Structured error types from crypto/x509 are matched first; only when the
// error carries no recognizable type does classification fall back to the
// centralized keyword tables over the lower-cased error text.
func ClassifyCertificateError(err error, url string) *domain.CertificateError {
	var invalidErr x509.CertificateInvalidError
	if apperrors.As(err, &invalidErr) {
		if invalidErr.Reason == x509.Expired {
			return &domain.CertificateError{Kind: domain.CertExpired, URL: url}
		}
		return &domain.CertificateError{Kind: domain.CertGeneric, URL: url, Detail: err.Error()}
	}

	var hostnameErr x509.HostnameError
	if apperrors.As(err, &hostnameErr) {
		return &domain.CertificateError{Kind: domain.CertHostnameMismatch, URL: url}
	}

	var unknownAuthorityErr x509.UnknownAuthorityError
	if apperrors.As(err, &unknownAuthorityErr) {
		if cert := unknownAuthorityErr.Cert; cert != nil &&
			bytes.Equal(cert.RawSubject, cert.RawIssuer) {
			return &domain.CertificateError{Kind: domain.CertSelfSigned, URL: url}
		}
		return &domain.CertificateError{Kind: domain.CertUntrustedRoot, URL: url}
	}

	kind := domain.MatchCertKind(err.Error())
	return &domain.CertificateError{Kind: kind, URL: url, Detail: err.Error()}
}
