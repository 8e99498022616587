package turner

import (
	"math"
	"strings"
	"testing"

	"nnfold-core/param"
	"nnfold-core/seq"
)

// --- local helpers (test-only) ---------------------------------------------

// newParams builds a full parameter set with distinct, deterministic values.
// atLeast switches the three length families to their "_at_least" names.
func newParams(atLeast bool) param.Set {
	ps := param.Set{}
	for _, f := range Families() {
		name := f.Name()
		if atLeast && f.HasAtLeast() {
			name += AtLeastSuffix
		}
		d := param.NewDense(name, f.Shape()...)
		data := d.Data()
		for k := range data {
			data[k] = float64((int(f)*31+k*17)%97)/10 - 4.8
		}
		ps[name] = d
	}
	return ps
}

func newEngine(t *testing.T, atLeast bool) (*Engine, param.Set, param.Set) {
	t.Helper()
	ps := newParams(atLeast)
	gs := param.ZerosLike(ps)
	e, err := New(ps, gs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, ps, gs
}

func cell(t *testing.T, ps param.Set, name string, idx ...int) float64 {
	t.Helper()
	d, ok := ps[name]
	if !ok {
		t.Fatalf("no table %s", name)
	}
	v, err := d.At(idx...)
	if err != nil {
		t.Fatalf("%s%v: %v", name, idx, err)
	}
	return v
}

func setCell(t *testing.T, ps param.Set, name string, v float64, idx ...int) {
	t.Helper()
	if err := ps[name].Set(v, idx...); err != nil {
		t.Fatalf("set %s%v: %v", name, idx, err)
	}
}

// dot is sum over all tables of grad·param.
func dot(gs, ps param.Set) float64 {
	s := 0.0
	for name, g := range gs {
		p := ps[name].Data()
		for k, v := range g.Data() {
			s += v * p[k]
		}
	}
	return s
}

func mass(gs param.Set) float64 {
	s := 0.0
	for _, g := range gs {
		s += g.Sum()
	}
	return s
}

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9*(1+math.Abs(b)) }

// loopSeq builds outer pair (1,j) and inner pair (l,k) with l1 unpaired
// bases on the 5' side and l2 on the 3' side. outer/inner give the 5' and
// 3' base of each pair as read 5'->3' along the strand.
func loopSeq(l1, l2 int, outer, inner string) (s seq.Seq, i, j, k, l int) {
	str := outer[:1] + strings.Repeat("A", l1) + inner[:1] + "AAAA" + inner[1:] + strings.Repeat("A", l2) + outer[1:]
	i = 1
	k = l1 + 2
	l = k + 5
	j = l + l2 + 1
	return seq.Encode(str), i, j, k, l
}

func hairpinSeq(n int, closing string) seq.Seq {
	return seq.Encode(closing[:1] + strings.Repeat("A", n) + closing[1:])
}
