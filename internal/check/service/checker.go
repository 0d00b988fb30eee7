package service

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/allisson/domainguard/internal/check/classifier"
	checkDomain "github.com/allisson/domainguard/internal/check/domain"
	apperrors "github.com/allisson/domainguard/internal/errors"
)

// SecurityCheck is the production Checker implementation. The request budget
// per check is at most two: one HTTPS probe, plus one HTTP fallback only when
// the HTTPS failure was not a TLS security failure. Whitelist verification
// costs no network request.
type SecurityCheck struct {
	doer             Doer
	whitelist        *checkDomain.Whitelist
	logger           *slog.Logger
	defaultTimeout   time.Duration
	enforceWhitelist bool
	maxConcurrency   int
}

// NewSecurityCheck creates a security check service.
func NewSecurityCheck(
	doer Doer,
	whitelist *checkDomain.Whitelist,
	logger *slog.Logger,
	defaultTimeout time.Duration,
	enforceWhitelist bool,
	maxConcurrency int,
) *SecurityCheck {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &SecurityCheck{
		doer:             doer,
		whitelist:        whitelist,
		logger:           logger,
		defaultTimeout:   defaultTimeout,
		enforceWhitelist: enforceWhitelist,
		maxConcurrency:   maxConcurrency,
	}
}

// Check runs all security checks for a single domain. It returns nil when the
// domain passes, or exactly one typed verdict describing the first failure:
// whitelist miss, certificate problem, weak key exchange, insecure HTTP, or
// unreachable.
func (s *SecurityCheck) Check(ctx context.Context, domainName string, opts Options) error {
	if s.enforceWhitelist && !opts.SkipWhitelist {
		if err := s.whitelist.Verify(domainName); err != nil {
			return err
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}

	httpsURL := "https://" + domainName

	resp, httpsErr := s.fetch(ctx, httpsURL, timeout)
	if httpsErr == nil {
		return classifier.CheckResponseDowngrade(resp, httpsURL, domainName)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperrors.Wrapf(ctxErr, "security check aborted for %s", domainName)
	}

	if isTLSSecurityError(httpsErr) {
		if classifier.IsKeyExchangeError(httpsErr) {
			return classifier.ClassifyKeyExchangeError(httpsErr, domainName)
		}
		return classifier.ClassifyCertificateError(httpsErr, httpsURL)
	}

	// HTTPS failed for a non-TLS reason. The HTTP fallback tells apart an
	// HTTP-only site from an unreachable one.
	s.logger.Debug("https probe failed, trying http fallback",
		slog.String("domain", domainName),
		slog.Any("error", httpsErr),
	)

	if _, httpErr := s.fetch(ctx, "http://"+domainName, timeout); httpErr != nil {
		return &checkDomain.UnreachableError{
			Domain:   domainName,
			HTTPSErr: httpsErr.Error(),
			HTTPErr:  httpErr.Error(),
		}
	}

	return &checkDomain.InsecureHTTPError{
		Kind:   checkDomain.HTTPOnly,
		Domain: domainName,
		Detail: httpsErr.Error(),
	}
}

// fetch performs one GET with its own timeout, draining and closing the body
// so the underlying connection can be reused.
func (s *SecurityCheck) fetch(ctx context.Context, url string, timeout time.Duration) (*http.Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.doer.Do(req)
	if err != nil {
		return nil, err
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp, nil
}

// isTLSSecurityError reports whether the HTTPS failure came from the TLS
// layer, which rules out the HTTP fallback request. Structured error types
// are checked first, then the error text.
func isTLSSecurityError(err error) bool {
	var certInvalid x509.CertificateInvalidError
	var hostnameErr x509.HostnameError
	var unknownAuthority x509.UnknownAuthorityError
	var recordHeader tls.RecordHeaderError
	var certVerification *tls.CertificateVerificationError
	if apperrors.As(err, &certInvalid) ||
		apperrors.As(err, &hostnameErr) ||
		apperrors.As(err, &unknownAuthority) ||
		apperrors.As(err, &recordHeader) ||
		apperrors.As(err, &certVerification) {
		return true
	}

	text := strings.ToLower(err.Error())
	for _, marker := range []string{"tls:", "x509:", "ssl", "certificate", "handshake"} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return checkDomain.HasKeyExchangeIndicator(text)
}
