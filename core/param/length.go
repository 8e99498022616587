// core/param/length.go
// Length-indexed families (hairpin, bulge, internal loop) come in two
// representations. A Direct table stores the energy of a loop of exactly
// length k at k. A Cumulative ("at least") table stores the increment for
// growing a loop from k-1 to k; its energies are prefix sums starting at the
// family's minimum loop length. Both forward lookup and the adjoint live
// here so the two cannot disagree about what length l means.

package param

// LengthTable is a length-indexed energy family.
type LengthTable interface {
	// Value returns the energy for a loop of length l.
	Value(l int) (float64, error)
	// Spread adds v into every raw cell of acc that Value(l) depends on.
	Spread(acc Accumulator, v float64, l int) error
	// Terms is the number of raw cells Value(l) depends on.
	Terms(l int) int
	// Len is the table extent.
	Len() int
	// AtLeast reports the cumulative representation.
	AtLeast() bool
}

// NewLengthTable copies the rank-1 table r once. When atLeast is set the
// copy is prefix-summed from min upward.
func NewLengthTable(name string, r Reader, atLeast bool, min int) (LengthTable, error) {
	shape := r.Shape()
	if len(shape) != 1 {
		return nil, &ShapeError{Name: name, Reason: "length table must be rank 1", Got: shape}
	}
	vals := make([]float64, shape[0])
	for k := range vals {
		v, err := r.At(k)
		if err != nil {
			return nil, err
		}
		vals[k] = v
	}
	if !atLeast {
		return &Direct{name: name, vals: vals}, nil
	}
	for k := min; k < len(vals); k++ {
		if k >= 1 {
			vals[k] += vals[k-1]
		}
	}
	return &Cumulative{name: name, prefix: vals, min: min}, nil
}

// Direct is a verbatim per-length table.
type Direct struct {
	name string
	vals []float64
}

func (d *Direct) Len() int      { return len(d.vals) }
func (d *Direct) AtLeast() bool { return false }
func (d *Direct) Terms(int) int { return 1 }

func (d *Direct) Value(l int) (float64, error) {
	if l < 0 || l >= len(d.vals) {
		return 0, &IndexError{Name: d.name, Index: []int{l}, Shape: []int{len(d.vals)}}
	}
	return d.vals[l], nil
}

func (d *Direct) Spread(acc Accumulator, v float64, l int) error {
	if l < 0 || l >= len(d.vals) {
		return &IndexError{Name: d.name, Index: []int{l}, Shape: []int{len(d.vals)}}
	}
	return acc.Add(v, l)
}

// Cumulative holds prefix sums of an "at least" table.
type Cumulative struct {
	name   string
	prefix []float64
	min    int
}

func (c *Cumulative) Len() int      { return len(c.prefix) }
func (c *Cumulative) AtLeast() bool { return true }

// Min is the first length at which summation starts.
func (c *Cumulative) Min() int { return c.min }

func (c *Cumulative) Value(l int) (float64, error) {
	if l < 0 || l >= len(c.prefix) {
		return 0, &IndexError{Name: c.name, Index: []int{l}, Shape: []int{len(c.prefix)}}
	}
	return c.prefix[l], nil
}

// first is the lowest raw cell folded into prefix[l] for l >= first.
func (c *Cumulative) first() int {
	if c.min < 1 {
		return 0
	}
	return c.min - 1
}

func (c *Cumulative) Terms(l int) int {
	lo := c.first()
	if l < lo {
		return 1
	}
	return l - lo + 1
}

// Spread is the adjoint of the prefix sum: prefix[l] = raw[min-1] + ... + raw[l].
func (c *Cumulative) Spread(acc Accumulator, v float64, l int) error {
	if l < 0 || l >= len(c.prefix) {
		return &IndexError{Name: c.name, Index: []int{l}, Shape: []int{len(c.prefix)}}
	}
	lo := c.first()
	if l < lo {
		return acc.Add(v, l)
	}
	for k := lo; k <= l; k++ {
		if err := acc.Add(v, k); err != nil {
			return err
		}
	}
	return nil
}
