package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lexalang/lexa-go/pkg/api"
	"github.com/lexalang/lexa-go/pkg/logger"
	"github.com/lexalang/lexa-go/pkg/output"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// defaultBatchWorkers bounds concurrent requests against the service when the
// caller does not choose a limit.
const defaultBatchWorkers = 2

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Workers is the number of inputs processed concurrently. Zero or
	// negative means defaultBatchWorkers.
	Workers int
	// OnProgress, when set, is called after each input finishes, successfully
	// or not. Calls are serialized.
	OnProgress func(done, total int)
}

// BatchResult pairs one input with its outcome. Exactly one of Output and Err
// is set.
type BatchResult struct {
	Input  nlptypes.Input
	Output *output.Output
	Err    error
}

// RunBatch runs the pipeline over every input with a bounded worker pool.
// Per-input failures are recorded in the corresponding BatchResult and do not
// stop the batch; the returned error is non-nil only when the context was
// cancelled before all inputs were processed.
func (p *Pipeline) RunBatch(ctx context.Context, tr api.Transport, inputs []nlptypes.Input, opts BatchOptions) ([]BatchResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	logger.G(ctx).WithFields(map[string]interface{}{
		"inputs":  len(inputs),
		"workers": workers,
	}).Debug("running pipeline batch")

	results := make([]BatchResult, len(inputs))
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			out, err := p.Run(gctx, tr, in)
			results[i] = BatchResult{Input: in, Output: out, Err: err}

			mu.Lock()
			done++
			if opts.OnProgress != nil {
				opts.OnProgress(done, len(inputs))
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}
