package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CheckBatch checks several domains concurrently, bounded by the configured
// concurrency limit. The result maps each domain to its verdict (nil when the
// domain passed). One failing domain never stops the others.
func (s *SecurityCheck) CheckBatch(ctx context.Context, domains []string, opts Options) map[string]error {
	results := make(map[string]error, len(domains))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.maxConcurrency)

	for _, domainName := range domains {
		group.Go(func() error {
			err := s.Check(groupCtx, domainName, opts)

			mu.Lock()
			results[domainName] = err
			mu.Unlock()

			// Verdicts are results, not group failures.
			return nil
		})
	}

	_ = group.Wait()
	return results
}
