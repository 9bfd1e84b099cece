package gridpath

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	griderrors "github.com/tamirms/gridpath/errors"
)

// BatchRequest is one path query in a batch.
type BatchRequest struct {
	Start  Position
	End    Position
	Stride int
	Flags  Flags
}

// BatchResult is the outcome of one BatchRequest. Path is nil unless
// Result is FoundPath (and may be empty for EmptyPath). Steps is the scan
// work the query cost, useful for calibrating incremental step limits.
type BatchResult struct {
	Path   []Position
	Result Result
	Steps  int
}

// SolveBatch resolves many path queries over one grid in parallel. Each
// worker owns a private Searcher, so the grid is the only shared state and
// must not change for the duration of the call.
//
// workers <= 0 uses GOMAXPROCS. Cancellation is checked between queries;
// on cancellation the error is returned and results computed so far are
// kept (unprocessed slots hold the zero BatchResult).
func SolveBatch[G Grid](ctx context.Context, grid G, reqs []BatchRequest, workers int, opts ...Option) ([]BatchResult, error) {
	if len(reqs) == 0 {
		return nil, griderrors.ErrNoRequests
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	results := make([]BatchResult, len(reqs))
	var next atomic.Int64

	group, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		group.Go(func() error {
			searcher := NewSearcher(grid, opts...)
			var path PathVector
			for {
				i := int(next.Add(1)) - 1
				if i >= len(reqs) {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}

				req := reqs[i]
				path.Clear()
				res := searcher.FindPath(&path, req.Start, req.End, req.Stride, req.Flags)

				r := BatchResult{Result: res, Steps: searcher.StepsDone()}
				if res == FoundPath {
					r.Path = append([]Position(nil), path.Positions()...)
				} else if res == EmptyPath {
					r.Path = []Position{}
				}
				results[i] = r
			}
		})
	}

	err := group.Wait()
	return results, err
}
