package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	checkService "github.com/allisson/domainguard/internal/check/service"
)

// domainCheckResult is the per-domain output row for check commands.
type domainCheckResult struct {
	Domain  string `json:"domain"`
	Allowed bool   `json:"allowed"`
	Error   string `json:"error,omitempty"`
}

// RunCheckDomains runs the full security check against one or more domains and
// writes per-domain results in text or JSON format. Returns an error when any
// domain fails so the process exits non-zero.
func RunCheckDomains(
	ctx context.Context,
	checker checkService.Checker,
	logger *slog.Logger,
	w io.Writer,
	domains []string,
	opts checkService.Options,
	format string,
) error {
	if len(domains) == 0 {
		return fmt.Errorf("at least one domain is required")
	}

	logger.Info("checking domains", slog.Int("count", len(domains)))

	verdicts := checker.CheckBatch(ctx, domains, opts)

	results := make([]domainCheckResult, 0, len(verdicts))
	failed := 0
	for domain, verdict := range verdicts {
		result := domainCheckResult{Domain: domain, Allowed: verdict == nil}
		if verdict != nil {
			result.Error = verdict.Error()
			failed++
		}
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Domain < results[j].Domain })

	if format == "json" {
		if err := writeJSON(w, results); err != nil {
			return err
		}
	} else {
		for _, result := range results {
			if result.Allowed {
				fmt.Fprintf(w, "OK    %s\n", result.Domain)
			} else {
				fmt.Fprintf(w, "FAIL  %s: %s\n", result.Domain, result.Error)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d domain(s) failed the security check", failed, len(results))
	}
	return nil
}
