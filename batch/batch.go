/*
Package batch implements spec.md §5's across-structure concurrency model:
"a batch driver may process N structures on N worker threads/processes with
no shared mutable state beyond the immutable modified-nucleotide registry
and an immutable template cache." It contains no pairing logic of its own —
only fan-out over basepair.Run and result aggregation — mirroring the way
bio.go's multi-format parsers fan out across an io.Reader's records.
*/
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/TimothyStiles/basepair"
	"github.com/TimothyStiles/basepair/structure"
)

// Result pairs a processed structure's index (its position in the input
// slice, preserved regardless of completion order) with its basepair.Result.
type Result struct {
	Index int
	basepair.Result
}

// ProcessAll runs basepair.Run over every structure in structures,
// concurrently, sharing cfg's registry and template cache read-only across
// workers as spec.md §5 requires. limit caps the number of structures
// processed at once; a limit <= 0 means unlimited concurrency (errgroup's
// own default when SetLimit is never called).
//
// A structure's own early-termination error (Result.Err) does not abort the
// batch — every structure gets a Result. ProcessAll's own returned error is
// non-nil only if ctx is cancelled before every worker finishes.
func ProcessAll(ctx context.Context, structures []*structure.Structure, cfg basepair.Config, limit int) ([]Result, error) {
	results := make([]Result, len(structures))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, s := range structures {
		i, s := i, s
		g.Go(func() error {
			results[i] = Result{Index: i, Result: basepair.Run(gctx, s, cfg)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
