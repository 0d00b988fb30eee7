package classifier

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/allisson/domainguard/internal/check/domain"
)

// RedirectHistory reconstructs the redirect chain that led to resp, oldest
// first. Each redirected response links back to its predecessor through
// Request.Response, so no custom redirect policy is needed to observe it.
func RedirectHistory(resp *http.Response) []*url.URL {
	var history []*url.URL
	for prev := resp.Request.Response; prev != nil; prev = prev.Request.Response {
		history = append(history, prev.Request.URL)
	}

	// Reverse into request order.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history
}

// CheckDowngrade fails when the final URL uses plain HTTP or when any URL in
// the redirect history did, even if the final response landed back on HTTPS.
func CheckDowngrade(finalURL *url.URL, history []*url.URL, originalURL, domainName string) error {
	if finalURL.Scheme == "http" {
		return &domain.InsecureHTTPError{
			Kind:   domain.HTTPDowngradeRedirect,
			Domain: domainName,
			Detail: fmt.Sprintf("%s -> %s", originalURL, finalURL),
		}
	}

	for _, hop := range history {
		if hop.Scheme == "http" {
			return &domain.InsecureHTTPError{
				Kind:   domain.HTTPDowngradeRedirect,
				Domain: domainName,
				Detail: hop.String(),
			}
		}
	}

	return nil
}

// CheckResponseDowngrade runs the downgrade check against a completed response.
func CheckResponseDowngrade(resp *http.Response, originalURL, domainName string) error {
	return CheckDowngrade(resp.Request.URL, RedirectHistory(resp), originalURL, domainName)
}
