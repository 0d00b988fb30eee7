package domain

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Whitelist is an immutable set of allowed domain names, loaded once at
// process start and read-only for the process lifetime. Membership is an
// exact string match; no normalization or case-folding is applied.
type Whitelist struct {
	domains map[string]struct{}
}

// NewWhitelist builds a whitelist from the given domains.
func NewWhitelist(domains []string) *Whitelist {
	set := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		if domain == "" {
			continue
		}
		set[domain] = struct{}{}
	}
	return &Whitelist{domains: set}
}

// LoadWhitelist reads a newline-delimited domains file. Surrounding whitespace
// is trimmed per line and blank lines are ignored.
func LoadWhitelist(path string) (*Whitelist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open whitelist file: %w", err)
	}
	defer file.Close()

	var domains []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		domains = append(domains, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read whitelist file: %w", err)
	}

	return NewWhitelist(domains), nil
}

// Contains reports whether the domain is in the whitelist.
func (w *Whitelist) Contains(domain string) bool {
	_, ok := w.domains[domain]
	return ok
}

// Verify returns a NotWhitelistedError if the domain is absent.
func (w *Whitelist) Verify(domain string) error {
	if !w.Contains(domain) {
		return &NotWhitelistedError{Domain: domain}
	}
	return nil
}

// Len returns the number of whitelisted domains.
func (w *Whitelist) Len() int {
	return len(w.domains)
}
