package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/types"
)

// BatchResult is the outcome of one request in a batch. Exactly one of Result and Err
// is set.
type BatchResult struct {
	Index  int
	Result *types.MatchResult
	Err    error
}

// ScoreBatch scores reqs on at most workers goroutines. Results are returned in request
// order; a failed request does not affect the others. The returned error is non-nil only
// when ctx ends before every request ran.
func (e *Engine) ScoreBatch(ctx context.Context, reqs []types.ScoreRequest, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(reqs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range reqs {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// Each goroutine owns results[i], so no lock is needed.
			result, err := e.ScoreResume(reqs[i])
			results[i] = BatchResult{Index: i, Result: result, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
