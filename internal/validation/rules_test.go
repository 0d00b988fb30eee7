package validation

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/domainguard/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("wraps non-nil error as invalid input", func(t *testing.T) {
		err := WrapValidationError(assert.AnError)
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"non-blank string", "example.gov.pl", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"tabs and newlines", "\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDomainName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"simple domain", "example.com", false},
		{"subdomain", "www.gov.pl", false},
		{"hyphenated label", "e-urzad.gov.pl", false},
		{"protocol prefix", "https://example.com", true},
		{"single label", "localhost", true},
		{"trailing dot", "example.com.", true},
		{"path suffix", "example.com/login", true},
		{"leading hyphen", "-bad.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DomainName.Validate(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBase64(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte("domain:123:30:abcd:ef01"))

	tests := []struct {
		name      string
		input     interface{}
		expectErr bool
	}{
		{"valid base64", valid, false},
		{"empty string skipped", "", false},
		{"invalid base64", "!!!not-base64!!!", true},
		{"non-string value", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Base64.Validate(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
