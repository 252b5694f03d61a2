package calculator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one request in a batch. Exactly one of
// Report and Err is meaningful.
type BatchResult struct {
	Index  int    `json:"index"`
	Report Report `json:"report"`
	Err    error  `json:"-"`
}

// CalculateBatch runs independent calculations concurrently, at most the
// service's concurrency at a time. Results are in request order. A failed
// request only sets its own Err. The returned error is non-nil only when
// ctx is done, in which case unstarted requests carry ctx's error.
func (s *Service) CalculateBatch(ctx context.Context, reqs []Request) ([]BatchResult, error) {
	results := make([]BatchResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, req := range reqs {
		results[i].Index = i
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		i, req := i, req
		g.Go(func() error {
			report, err := s.Calculate(gctx, req)
			results[i].Report = report
			results[i].Err = err
			return nil
		})
	}

	_ = g.Wait()

	s.logger.Debug().
		Int("requests", len(reqs)).
		Int("failed", countFailed(results)).
		Msg("batch completed")

	return results, ctx.Err()
}

func countFailed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
