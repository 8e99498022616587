package turner

import (
	"math"

	"nnfold-core/param"
	"nnfold-core/seq"
)

// A plan is the list of table reads one motif energy is made of. The score
// path sums coef·table[idx]; the count path adds coef·v into grad[idx], and
// length terms go through the family's own adjoint.
type plan struct {
	terms [8]term
	n     int
	err   error
}

type term struct {
	fam    Family
	idx    [6]int
	rank   int
	coef   float64
	length bool // idx[0] is a loop length into lengths[fam]
}

func (p *plan) cell(f Family, coef float64, idx ...int) {
	if p.n == len(p.terms) {
		panic("turner: too many terms in one motif")
	}
	t := &p.terms[p.n]
	t.fam, t.coef, t.length = f, coef, false
	t.rank = copy(t.idx[:], idx)
	p.n++
}

func (p *plan) loopLength(f Family, l int) {
	if p.n == len(p.terms) {
		panic("turner: too many terms in one motif")
	}
	t := &p.terms[p.n]
	t.fam, t.coef, t.length, t.rank = f, 1, true, 1
	t.idx[0] = l
	p.n++
}

// extendedLength adds a length term, extrapolating past MaxLoop with
// lxc·ln(l/MaxLoop).
func (p *plan) extendedLength(f Family, l int) {
	if l <= MaxLoop {
		p.loopLength(f, l)
		return
	}
	p.loopLength(f, MaxLoop)
	p.cell(LXC, math.Log(float64(l)/MaxLoop), 0)
}

func (p *plan) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (e *Engine) score(p *plan) (float64, error) {
	if p.err != nil {
		return 0, p.err
	}
	sum := 0.0
	for k := 0; k < p.n; k++ {
		t := &p.terms[k]
		if t.length {
			v, err := e.lengths[t.fam].Value(t.idx[0])
			if err != nil {
				return 0, err
			}
			sum += v
			continue
		}
		v, err := e.read[t.fam].At(t.idx[:t.rank]...)
		if err != nil {
			return 0, err
		}
		sum += t.coef * v
	}
	return sum, nil
}

// count validates every index before touching a gradient cell, so a failed
// call leaves the gradients unchanged.
func (e *Engine) count(p *plan, v float64) error {
	if p.err != nil {
		return p.err
	}
	for k := 0; k < p.n; k++ {
		t := &p.terms[k]
		var err error
		if t.length {
			_, err = e.lengths[t.fam].Value(t.idx[0])
		} else {
			_, err = e.read[t.fam].At(t.idx[:t.rank]...)
		}
		if err != nil {
			return err
		}
	}
	for k := 0; k < p.n; k++ {
		t := &p.terms[k]
		if t.length {
			if err := e.lengths[t.fam].Spread(e.grad[t.fam], v, t.idx[0]); err != nil {
				return err
			}
			continue
		}
		if err := e.grad[t.fam].Add(t.coef*v, t.idx[:t.rank]...); err != nil {
			return err
		}
	}
	return nil
}

// cursor reads padded sequence positions, keeping the first bad index.
type cursor struct {
	s   seq.Seq
	err error
}

func (c *cursor) at(p int) int {
	if p < 0 || p >= len(c.s) {
		if c.err == nil {
			c.err = &param.IndexError{Name: "sequence", Index: []int{p}, Shape: []int{len(c.s)}}
		}
		return 0
	}
	return int(c.s[p])
}

func (c *cursor) pair(p, q int) seq.PairType {
	a, b := c.at(p), c.at(q)
	return seq.Classify(seq.Symbol(a), seq.Symbol(b))
}
