package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	checkDomain "github.com/allisson/domainguard/internal/check/domain"
)

// Expected root CA for Polish government domains, taken from the gov.pl
// certificate chain.
const (
	expectedRootCACommonName   = "Certum Trusted Network CA"
	expectedRootCAOrganization = "Unizeto Technologies S.A."
)

const httpsPort = 443

// RootCAChainValidator checks that a domain's certificate chain terminates at
// the expected government root CA.
type RootCAChainValidator struct {
	fetcher ChainFetcher
	timeout time.Duration
}

// NewRootCAChainValidator creates a root CA chain validator.
func NewRootCAChainValidator(fetcher ChainFetcher, timeout time.Duration) *RootCAChainValidator {
	return &RootCAChainValidator{fetcher: fetcher, timeout: timeout}
}

// Validate fetches the domain's certificate chain and looks for the expected
// root CA among the chain subjects. Servers usually omit the root itself, so
// when no subject matches, the issuer of the last certificate is checked.
func (v *RootCAChainValidator) Validate(ctx context.Context, domainName string) error {
	chain, err := v.fetcher.FetchChain(ctx, domainName, httpsPort, v.timeout)
	if err != nil {
		return &checkDomain.CertificateError{
			Kind:   checkDomain.CertGeneric,
			URL:    "https://" + domainName,
			Detail: fmt.Sprintf("failed to retrieve certificate chain: %v", err),
		}
	}

	for _, cert := range chain {
		if matchesExpectedRootCA(cert.Subject.CommonName, cert.Subject.Organization) {
			return nil
		}
	}

	lastCert := chain[len(chain)-1]
	if matchesExpectedRootCA(lastCert.Issuer.CommonName, lastCert.Issuer.Organization) {
		return nil
	}

	return &checkDomain.CertificateError{
		Kind: checkDomain.CertUntrustedRoot,
		URL:  "https://" + domainName,
		Detail: fmt.Sprintf(
			"expected root CA CN=%q, got CN=%q",
			expectedRootCACommonName, lastCert.Issuer.CommonName,
		),
	}
}

func matchesExpectedRootCA(commonName string, organizations []string) bool {
	return commonName == expectedRootCACommonName &&
		slices.Contains(organizations, expectedRootCAOrganization)
}
