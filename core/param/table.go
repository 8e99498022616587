// core/param/table.go
// Tables are addressed by index tuples; the engine never assumes a concrete
// array layout. Dense is the row-major implementation the host uses.

package param

import "fmt"

// Reader is read-only access to a parameter table.
type Reader interface {
	Shape() []int
	At(idx ...int) (float64, error)
}

// Accumulator is mutable access to a gradient table. Add accumulates into
// the cell; it never overwrites.
type Accumulator interface {
	Shape() []int
	Add(v float64, idx ...int) error
}

// Dense is a row-major N-dimensional float64 table.
type Dense struct {
	name    string
	shape   []int
	strides []int
	data    []float64
}

// NewDense allocates a zeroed table of the given shape.
func NewDense(name string, shape ...int) *Dense {
	n := 1
	for _, d := range shape {
		if d < 0 {
			d = 0
		}
		n *= d
	}
	t := &Dense{name: name, shape: append([]int(nil), shape...), data: make([]float64, n)}
	t.strides = stridesOf(t.shape)
	return t
}

// FromData wraps data in a table of the given shape. The slice is not copied.
func FromData(name string, shape []int, data []float64) (*Dense, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, &ShapeError{Name: name, Reason: "negative extent", Got: shape}
		}
		n *= d
	}
	if n != len(data) {
		return nil, &ShapeError{Name: name, Reason: fmt.Sprintf("%d values for %d cells", len(data), n), Got: shape}
	}
	t := &Dense{name: name, shape: append([]int(nil), shape...), data: data}
	t.strides = stridesOf(t.shape)
	return t, nil
}

func stridesOf(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for k := len(shape) - 1; k >= 0; k-- {
		st[k] = acc
		acc *= shape[k]
	}
	return st
}

func (t *Dense) Name() string    { return t.name }
func (t *Dense) Shape() []int    { return t.shape }
func (t *Dense) Rank() int       { return len(t.shape) }
func (t *Dense) Len() int        { return len(t.data) }
func (t *Dense) Data() []float64 { return t.data }

func (t *Dense) offset(idx []int) (int, error) {
	if len(idx) != len(t.shape) {
		return 0, &IndexError{Name: t.name, Index: append([]int(nil), idx...), Shape: t.shape}
	}
	off := 0
	for k, x := range idx {
		if x < 0 || x >= t.shape[k] {
			return 0, &IndexError{Name: t.name, Index: append([]int(nil), idx...), Shape: t.shape}
		}
		off += x * t.strides[k]
	}
	return off, nil
}

// At returns the cell at idx.
func (t *Dense) At(idx ...int) (float64, error) {
	off, err := t.offset(idx)
	if err != nil {
		return 0, err
	}
	return t.data[off], nil
}

// Set overwrites the cell at idx. Parameter owners use it to populate tables.
func (t *Dense) Set(v float64, idx ...int) error {
	off, err := t.offset(idx)
	if err != nil {
		return err
	}
	t.data[off] = v
	return nil
}

// Add accumulates v into the cell at idx.
func (t *Dense) Add(v float64, idx ...int) error {
	off, err := t.offset(idx)
	if err != nil {
		return err
	}
	t.data[off] += v
	return nil
}

// Zero clears every cell.
func (t *Dense) Zero() {
	for i := range t.data {
		t.data[i] = 0
	}
}

// Sum returns the total of all cells.
func (t *Dense) Sum() float64 {
	s := 0.0
	for _, v := range t.data {
		s += v
	}
	return s
}

// Clone returns a deep copy.
func (t *Dense) Clone() *Dense {
	c := NewDense(t.name, t.shape...)
	copy(c.data, t.data)
	return c
}

// AddDense adds o element-wise into t. Shapes must match.
func (t *Dense) AddDense(o *Dense) error {
	if !sameShape(t.shape, o.shape) {
		return &ShapeError{Name: t.name, Reason: "cannot merge", Got: o.shape, Want: t.shape}
	}
	for i, v := range o.data {
		t.data[i] += v
	}
	return nil
}

func sameShape(a, b []int) bool {
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
