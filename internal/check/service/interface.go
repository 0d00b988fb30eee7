// Package service implements the unified domain security check. It orchestrates
// the whitelist, the HTTP probes, and the error classifiers so that a single
// call answers whether a domain is safe, with at most two network requests.
package service

import (
	"context"
	"crypto/x509"
	"net/http"
	"time"
)

// Doer abstracts the HTTP client used for security probes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChainFetcher retrieves a raw certificate chain for a domain.
type ChainFetcher interface {
	FetchChain(ctx context.Context, domain string, port int, timeout time.Duration) ([]*x509.Certificate, error)
}

// Options tunes a single security check.
type Options struct {
	// Timeout bounds each network request. Zero means the service default.
	Timeout time.Duration
	// SkipWhitelist bypasses the whitelist membership check.
	SkipWhitelist bool
}

// Checker runs security checks against domains. A nil return means every
// check passed; otherwise the error is one of the typed verdicts from the
// check domain package.
type Checker interface {
	Check(ctx context.Context, domainName string, opts Options) error
	CheckBatch(ctx context.Context, domains []string, opts Options) map[string]error
}

// ChainValidator validates that a domain's certificate chain terminates at the
// expected root CA.
type ChainValidator interface {
	Validate(ctx context.Context, domainName string) error
}
