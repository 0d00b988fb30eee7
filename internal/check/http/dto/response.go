// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import "sort"

// CheckDomainResponse represents a passed single-domain check.
type CheckDomainResponse struct {
	Domain  string `json:"domain"`
	Allowed bool   `json:"allowed"`
}

// DomainResultResponse represents one domain's outcome inside a batch result.
type DomainResultResponse struct {
	Domain  string `json:"domain"`
	Allowed bool   `json:"allowed"`
	Error   string `json:"error,omitempty"`
}

// CheckDomainsResponse represents a batch check outcome. Individual failures
// are results, not request failures, so the response is always 200.
type CheckDomainsResponse struct {
	Results []DomainResultResponse `json:"results"`
}

// MapBatchResults converts per-domain verdicts to a batch response, sorted by
// domain for a stable output order.
func MapBatchResults(results map[string]error) CheckDomainsResponse {
	mapped := make([]DomainResultResponse, 0, len(results))
	for domain, err := range results {
		result := DomainResultResponse{Domain: domain, Allowed: err == nil}
		if err != nil {
			result.Error = err.Error()
		}
		mapped = append(mapped, result)
	}

	sort.Slice(mapped, func(i, j int) bool {
		return mapped[i].Domain < mapped[j].Domain
	})

	return CheckDomainsResponse{Results: mapped}
}
