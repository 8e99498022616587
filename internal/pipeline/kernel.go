// internal/pipeline/kernel.go
package pipeline

import (
	"nnfold-core/param"
	"nnfold-core/seq"
	"nnfold-core/turner"

	"nnfold/internal/motif"
)

// Kernel is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Kernel interface {
	Score(m motif.Motif, s seq.Seq) (float64, error)
	Count(m motif.Motif, s seq.Seq) error
	// WithGradients returns a kernel sharing parameters but accumulating
	// into grads.
	WithGradients(grads param.Sink) (Kernel, error)
}

// EngineKernel adapts a turner.Engine.
type EngineKernel struct{ *turner.Engine }

func (k EngineKernel) Score(m motif.Motif, s seq.Seq) (float64, error) { return m.Score(k.Engine, s) }
func (k EngineKernel) Count(m motif.Motif, s seq.Seq) error            { return m.Count(k.Engine, s) }

func (k EngineKernel) WithGradients(grads param.Sink) (Kernel, error) {
	e, err := k.Engine.WithGradients(grads)
	if err != nil {
		return nil, err
	}
	return EngineKernel{e}, nil
}
