package cmdutil

import (
	"context"

	"nnfold-core/param"

	"nnfold/internal/pipeline"
)

// RunStream runs the shared pipeline, converts each result with visit, and
// streams the kept outputs via send. It returns the number of kept outputs
// and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	k pipeline.Kernel,
	grads param.Set,
	items []pipeline.Item,
	visit func(pipeline.Result) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.Run(ctx, cfg, k, grads, items, func(r pipeline.Result) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
