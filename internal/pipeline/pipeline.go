// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"nnfold-core/param"
	"nnfold-core/seq"

	"nnfold/internal/motif"
)

// Config controls the scoring pipeline.
type Config struct {
	Threads int  // number of worker goroutines (>=1)
	Count   bool // accumulate weighted gradients in addition to scoring
}

// Item is one unit of work: a motif and the encoded sequence it refers to.
type Item struct {
	Motif      motif.Motif
	Seq        seq.Seq
	SourceFile string
}

// Result is a scored item.
type Result struct {
	Index  int
	Item   Item
	Energy float64
}

// MotifError locates a failing item.
type MotifError struct {
	Index int
	Item  Item
	Err   error
}

func (e *MotifError) Error() string {
	m := e.Item.Motif
	where := fmt.Sprintf("motif %d", e.Index+1)
	if m.Line > 0 {
		where = fmt.Sprintf("%s:%d", e.Item.SourceFile, m.Line)
	}
	return fmt.Sprintf("%s: %s %s %v: %v", where, m.SeqID, m.Kind, m.Coords, e.Err)
}

func (e *MotifError) Unwrap() error { return e.Err }

// Run scores every item and calls visit with results in input order.
// When cfg.Count is set, grads must hold zeroed-or-accumulating tables
// matching the kernel's bound gradients; each worker counts into its own copy
// and the copies are merged into grads before Run returns. On error grads is
// left unchanged. It returns the first error encountered (including context
// cancellation).
func Run(
	ctx context.Context,
	cfg Config,
	k Kernel,
	grads param.Set,
	items []Item,
	visit func(Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Threads > len(items) && len(items) > 0 {
		cfg.Threads = len(items)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Per-worker kernels and gradient buffers.
	kernels := make([]Kernel, cfg.Threads)
	var partial []param.Set
	for w := range kernels {
		kernels[w] = k
		if !cfg.Count {
			continue
		}
		buf := param.ZerosLike(grads)
		wk, err := k.WithGradients(buf)
		if err != nil {
			return err
		}
		kernels[w] = wk
		partial = append(partial, buf)
	}

	type outcome struct {
		Result
		err error
	}
	jobs := make(chan int, cfg.Threads*2)
	results := make(chan outcome, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func(kern Kernel) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-jobs:
					if !ok {
						return
					}
					it := items[idx]
					o := outcome{Result: Result{Index: idx, Item: it}}
					o.Energy, o.err = kern.Score(it.Motif, it.Seq)
					if o.err == nil && cfg.Count {
						o.err = kern.Count(it.Motif, it.Seq)
					}
					if o.err != nil {
						o.err = &MotifError{Index: idx, Item: it, Err: o.err}
					}
					select {
					case results <- o:
					case <-ctx.Done():
						return
					}
				}
			}
		}(kernels[w])
	}

	// Collector: reorders by index so visit sees input order.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]Result)
		next := 0
		for o := range results {
			if cerr != nil {
				continue
			}
			if o.err != nil {
				cerr = o.err
				cancel()
				continue
			}
			pending[o.Index] = o.Result
			for {
				r, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := visit(r); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
feed:
	for idx := range items {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	for _, buf := range partial {
		if err := grads.Merge(buf); err != nil {
			return err
		}
	}
	return nil
}
