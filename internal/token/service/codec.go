// Package service implements token minting and verification with HMAC-SHA256.
//
// Token structure: base64(domain:timestamp:ttl:salt:signature) where
// signature = HMAC-SHA256(masterSecret||pepper, domain:timestamp:ttl:salt).
// The salt is fresh 128-bit randomness per token, transmitted inside the
// token. The pepper is a compile-time constant that never leaves the process;
// together with the master secret it forms the signing key, so possession of
// a token (salt included) is never enough to forge another one.
package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tokenDomain "github.com/allisson/domainguard/internal/token/domain"
)

// pepper is baked into the binary and never transmitted or logged.
const pepper = "hardcoded_pepper_value_never_leave_server_af8d92b1c3e4f567"

const saltSize = 16

var protocolPrefix = regexp.MustCompile(`(?i)^https?://`)

// Codec mints and verifies domain-bound tokens. It holds the master secret
// and is the only component able to produce valid signatures.
type Codec struct {
	masterSecret []byte
	now          func() time.Time
	readRandom   func(b []byte) (int, error)
}

// NewCodec creates a codec signing with masterSecret||pepper.
func NewCodec(masterSecret string) *Codec {
	return &Codec{
		masterSecret: []byte(masterSecret),
		now:          time.Now,
		readRandom:   rand.Read,
	}
}

// NormalizeDomain strips a leading http:// or https:// prefix, case
// insensitively. No other normalization is applied.
func NormalizeDomain(domain string) string {
	return protocolPrefix.ReplaceAllString(domain, "")
}

// Generate mints a token binding the normalized domain for ttlSeconds.
func (c *Codec) Generate(domain string, ttlSeconds int) (string, error) {
	normalized := NormalizeDomain(domain)

	salt := make([]byte, saltSize)
	if _, err := c.readRandom(salt); err != nil {
		return "", fmt.Errorf("failed to generate token salt: %w", err)
	}

	timestamp := strconv.FormatInt(c.now().UTC().Unix(), 10)
	ttl := strconv.Itoa(ttlSeconds)

	message := strings.Join([]string{normalized, timestamp, ttl, hex.EncodeToString(salt)}, ":")
	tokenData := message + ":" + c.sign(message)

	return base64.StdEncoding.EncodeToString([]byte(tokenData)), nil
}

// Verify checks a token's structure, expiration, and signature, in that
// order. Expiration is checked before the signature so that an expired token
// reports its age; the signature check uses a constant-time comparison.
func (c *Codec) Verify(token string) tokenDomain.VerifyResult {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return tokenDomain.VerifyResult{Reason: "Invalid token format"}
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 5 {
		return tokenDomain.VerifyResult{Reason: "Invalid token format"}
	}

	domain, timestampStr, ttlStr, saltHex, providedSignature := parts[0], parts[1], parts[2], parts[3], parts[4]

	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return tokenDomain.VerifyResult{Reason: "Invalid timestamp or TTL"}
	}
	ttl, err := strconv.ParseInt(ttlStr, 10, 64)
	if err != nil {
		return tokenDomain.VerifyResult{Reason: "Invalid timestamp or TTL"}
	}

	currentTime := c.now().UTC().Unix()
	if currentTime > timestamp+ttl {
		age := currentTime - timestamp
		return tokenDomain.VerifyResult{
			Reason: fmt.Sprintf("Token expired (TTL: %ds, age: %ds)", ttl, age),
			Domain: domain,
		}
	}

	message := strings.Join([]string{domain, timestampStr, ttlStr, saltHex}, ":")
	expectedSignature := c.sign(message)

	if !hmac.Equal([]byte(expectedSignature), []byte(providedSignature)) {
		return tokenDomain.VerifyResult{Reason: "Invalid signature (token may be forged or tampered)"}
	}

	return tokenDomain.VerifyResult{
		Valid:  true,
		Reason: "Token verified successfully",
		Domain: domain,
	}
}

func (c *Codec) sign(message string) string {
	signingKey := make([]byte, 0, len(c.masterSecret)+len(pepper))
	signingKey = append(signingKey, c.masterSecret...)
	signingKey = append(signingKey, pepper...)

	mac := hmac.New(sha256.New, signingKey)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
