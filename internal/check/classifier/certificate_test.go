package classifier

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/domainguard/internal/check/domain"
)

const testURL = "https://example.gov.pl"

func TestClassifyCertificateError_StructuredTypes(t *testing.T) {
	t.Run("expired certificate", func(t *testing.T) {
		err := x509.CertificateInvalidError{Reason: x509.Expired}

		verdict := ClassifyCertificateError(err, testURL)

		require.NotNil(t, verdict)
		assert.Equal(t, domain.CertExpired, verdict.Kind)
		assert.Equal(t, testURL, verdict.URL)
	})

	t.Run("other invalid reason falls to generic", func(t *testing.T) {
		err := x509.CertificateInvalidError{Reason: x509.TooManyIntermediates}

		verdict := ClassifyCertificateError(err, testURL)

		assert.Equal(t, domain.CertGeneric, verdict.Kind)
	})

	t.Run("hostname mismatch", func(t *testing.T) {
		err := x509.HostnameError{Certificate: &x509.Certificate{}, Host: "other.example.com"}

		verdict := ClassifyCertificateError(err, testURL)

		assert.Equal(t, domain.CertHostnameMismatch, verdict.Kind)
	})

	t.Run("unknown authority with self-signed leaf", func(t *testing.T) {
		raw := []byte{0x30, 0x01, 0x01}
		cert := &x509.Certificate{
			RawSubject: raw,
			RawIssuer:  raw,
			Subject:    pkix.Name{CommonName: "selfie.example.com"},
		}
		err := x509.UnknownAuthorityError{Cert: cert}

		verdict := ClassifyCertificateError(err, testURL)

		assert.Equal(t, domain.CertSelfSigned, verdict.Kind)
	})

	t.Run("unknown authority with distinct issuer", func(t *testing.T) {
		cert := &x509.Certificate{
			RawSubject: []byte{0x30, 0x01, 0x01},
			RawIssuer:  []byte{0x30, 0x02, 0x02},
		}
		err := x509.UnknownAuthorityError{Cert: cert}

		verdict := ClassifyCertificateError(err, testURL)

		assert.Equal(t, domain.CertUntrustedRoot, verdict.Kind)
	})

	t.Run("structured type wins even when wrapped", func(t *testing.T) {
		err := fmt.Errorf("Get %q: %w", testURL, x509.CertificateInvalidError{Reason: x509.Expired})

		verdict := ClassifyCertificateError(err, testURL)

		assert.Equal(t, domain.CertExpired, verdict.Kind)
	})
}

func TestClassifyCertificateError_KeywordFallback(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.CertKind
	}{
		{"expired", "certificate has expired", domain.CertExpired},
		{"hostname", "tls: hostname verification failed", domain.CertHostnameMismatch},
		{"self signed", "self signed certificate in chain", domain.CertSelfSigned},
		{"local issuer", "unable to get local issuer certificate", domain.CertUntrustedRoot},
		{"verify failed", "certificate verify failed", domain.CertUntrustedRoot},
		{"generic", "some opaque tls failure", domain.CertGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := ClassifyCertificateError(errors.New(tt.text), testURL)

			assert.Equal(t, tt.expected, verdict.Kind)
			if tt.expected == domain.CertGeneric {
				assert.Contains(t, verdict.Error(), tt.text)
			}
		})
	}
}
