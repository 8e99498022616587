// core/turner/engine.go
// Turner-style nearest-neighbor loop energies and their parameter adjoint.
//
// An Engine is bound once to a parameter Source and a gradient Sink. Score*
// methods are read-only and safe for concurrent use. Count* methods add into
// the bound gradient tables and must be serialized per Engine; use
// WithGradients to give each worker its own buffers, or param.Locked.
//
// This package has no I/O; hosts own sequence loading and table storage.

package turner

import (
	"nnfold-core/param"
)

// Engine scores loop motifs and accumulates their gradients.
type Engine struct {
	names   [NumFamilies]string
	read    [NumFamilies]param.Reader
	grad    [NumFamilies]param.Accumulator
	lengths [NumFamilies]param.LengthTable
}

// New binds every family. For hairpin, bulge and internal the "_at_least"
// table is preferred when params has it; the gradient sink must then offer
// the same name. Any missing table, wrong rank, or gradient shape differing
// from the parameter shape fails with param.ErrShapeMismatch.
func New(params param.Source, grads param.Sink) (*Engine, error) {
	e := &Engine{}
	for _, f := range Families() {
		name := f.Name()
		if f.HasAtLeast() {
			if _, ok := params.Table(name + AtLeastSuffix); ok {
				name += AtLeastSuffix
			}
		}
		r, ok := params.Table(name)
		if !ok {
			return nil, &param.ShapeError{Name: name, Reason: "missing parameter table"}
		}
		shape := r.Shape()
		if len(shape) != f.Rank() {
			return nil, &param.ShapeError{Name: name, Reason: "wrong rank", Got: shape, Want: f.Shape()}
		}
		e.names[f] = name
		e.read[f] = r
		if f.HasAtLeast() {
			lt, err := param.NewLengthTable(name, r, name != f.Name(), f.MinLength())
			if err != nil {
				return nil, err
			}
			e.lengths[f] = lt
		}
	}
	if err := e.bindGradients(grads); err != nil {
		return nil, err
	}
	return e, nil
}

// WithGradients returns an engine sharing e's parameters and caches but
// accumulating into grads.
func (e *Engine) WithGradients(grads param.Sink) (*Engine, error) {
	c := *e
	if err := c.bindGradients(grads); err != nil {
		return nil, err
	}
	return &c, nil
}

func (e *Engine) bindGradients(grads param.Sink) error {
	for _, f := range Families() {
		name := e.names[f]
		a, ok := grads.Accumulator(name)
		if !ok {
			return &param.ShapeError{Name: name, Reason: "missing gradient table"}
		}
		if got, want := a.Shape(), e.read[f].Shape(); !equalShape(got, want) {
			return &param.ShapeError{Name: name, Reason: "gradient shape differs from parameter", Got: got, Want: want}
		}
		e.grad[f] = a
	}
	return nil
}

// AtLeast reports whether f was bound to its cumulative variant.
func (e *Engine) AtLeast(f Family) bool {
	return f.HasAtLeast() && e.lengths[f] != nil && e.lengths[f].AtLeast()
}

// TableName is the resolved table name bound for f.
func (e *Engine) TableName(f Family) string { return e.names[f] }

// Length returns the cached representation of a length family, or nil.
func (e *Engine) Length(f Family) param.LengthTable { return e.lengths[f] }

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
