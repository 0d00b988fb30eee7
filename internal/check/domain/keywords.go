package domain

import "strings"

// Error-text classification tables.
//
// TLS libraries do not treat their error message text as a stable contract, so
// every substring this package matches on lives here rather than scattered
// through the classifiers. The sets mirror OpenSSL and crypto/tls message text
// and should be re-verified when the toolchain is upgraded.

// keyExchangeIndicators gates the key-exchange classifier: only errors whose
// lower-cased text contains one of these substrings are treated as
// key-exchange failures at all. Everything else is a certificate problem.
var keyExchangeIndicators = []string{
	"bad_dh_value",
	"bad dh value",
	"dh key too small",
	"dh_key_too_small",
	"handshake failure",
	"handshake_failure",
	"no shared cipher",
	"cipher",
	"key exchange",
}

// certKeywordRule maps error-text substrings to a certificate verdict kind.
type certKeywordRule struct {
	Substrings []string
	Kind       CertKind
}

// certKeywordRules are evaluated in order; the first rule with any matching
// substring wins. Unmatched errors fall through to CertGeneric.
var certKeywordRules = []certKeywordRule{
	{Substrings: []string{"certificate has expired", "expired"}, Kind: CertExpired},
	{Substrings: []string{"hostname", "does not match"}, Kind: CertHostnameMismatch},
	{Substrings: []string{"self signed", "self-signed"}, Kind: CertSelfSigned},
	{Substrings: []string{"unable to get local issuer", "certificate verify failed"}, Kind: CertUntrustedRoot},
}

// keyExchangeKeywordRule maps error-text substrings to a key-exchange verdict
// kind plus the detail string embedded in the verdict message.
type keyExchangeKeywordRule struct {
	Substrings []string
	Kind       KeyExchangeKind
	Detail     string
}

// keyExchangeKeywordRules are evaluated in order; the first rule with any
// matching substring wins.
var keyExchangeKeywordRules = []keyExchangeKeywordRule{
	{Substrings: []string{"bad_dh_value", "bad dh value"}, Kind: KeyExchangeSmallKey, Detail: "bad DH value"},
	{Substrings: []string{"dh key too small", "dh_key_too_small"}, Kind: KeyExchangeSmallKey, Detail: "key too small"},
	{Substrings: []string{"handshake failure", "handshake_failure"}, Kind: KeyExchangeHandshakeFailure},
}

// keyExchangeResidual catches remaining SSL/TLS/cipher-flavored errors after
// the specific rules above have been tried.
var keyExchangeResidual = []string{"ssl", "tls", "cipher"}

// HasKeyExchangeIndicator reports whether the error text contains any
// key-exchange indicator keyword.
func HasKeyExchangeIndicator(text string) bool {
	lowered := strings.ToLower(text)
	for _, indicator := range keyExchangeIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}

// MatchCertKind classifies error text into a certificate verdict kind.
func MatchCertKind(text string) CertKind {
	lowered := strings.ToLower(text)
	for _, rule := range certKeywordRules {
		for _, substring := range rule.Substrings {
			if strings.Contains(lowered, substring) {
				return rule.Kind
			}
		}
	}
	return CertGeneric
}

// MatchKeyExchangeKind classifies error text into a key-exchange verdict kind.
// The boolean result is false when the text matches nothing, including the
// residual SSL/TLS bucket; such errors are not key-exchange verdicts.
func MatchKeyExchangeKind(text string) (KeyExchangeKind, string, bool) {
	lowered := strings.ToLower(text)

	for _, rule := range keyExchangeKeywordRules {
		for _, substring := range rule.Substrings {
			if strings.Contains(lowered, substring) {
				return rule.Kind, rule.Detail, true
			}
		}
	}

	// Small subgroup needs both words present, in any order.
	if strings.Contains(lowered, "small") && strings.Contains(lowered, "subgroup") {
		return KeyExchangeSmallSubgroup, "", true
	}

	if strings.Contains(lowered, "composite") {
		return KeyExchangeCompositeModulus, "", true
	}

	for _, substring := range keyExchangeResidual {
		if strings.Contains(lowered, substring) {
			return KeyExchangeGeneric, "", true
		}
	}

	return "", "", false
}
