package turner

import (
	"nnfold-core/param"
	"nnfold-core/seq"
)

// Motif lowering. Each builder fills a plan with exactly the reads the
// motif's energy consists of; score and count share them.

func (e *Engine) hairpin(p *plan, s seq.Seq, i, j int) {
	c := cursor{s: s}
	l := j - i - 1
	p.extendedLength(Hairpin, l)
	if l < 3 {
		return
	}
	t := c.pair(i, j)
	if l == 3 {
		if t.Weak() {
			p.cell(TerminalAU, 1, 0)
		}
	} else {
		p.cell(MismatchHairpin, 1, int(t), c.at(i+1), c.at(j-1))
	}
	p.fail(c.err)
}

// singleLoop lowers the loop between outer pair (i,j) and inner pair (l,k),
// i < k < l < j, the inner pair read 5'->3' from the loop's inside.
func (e *Engine) singleLoop(p *plan, s seq.Seq, i, j, k, l int) {
	c := cursor{s: s}
	t1 := c.pair(i, j)
	t2 := c.pair(l, k)
	l1 := k - i - 1
	l2 := j - l - 1
	ls, ll := minmax(l1, l2)

	switch Classify(l1, l2) {
	case LoopInvalid:
		p.fail(&param.IndexError{Name: "single loop", Index: []int{l1, l2}})
		return
	case LoopStack:
		p.cell(Stack, 1, int(t1), int(t2))
	case LoopBulge:
		p.extendedLength(Bulge, ll)
		if ll == 1 {
			p.cell(Stack, 1, int(t1), int(t2))
		} else {
			if t1.Weak() {
				p.cell(TerminalAU, 1, 0)
			}
			if t2.Weak() {
				p.cell(TerminalAU, 1, 0)
			}
		}
	case LoopInt11:
		p.cell(Int11, 1, int(t1), int(t2), c.at(i+1), c.at(j-1))
	case LoopInt21:
		p.cell(Int21, 1, int(t2), int(t1), c.at(l+1), c.at(i+1), c.at(k-1))
	case LoopInt12:
		p.cell(Int21, 1, int(t1), int(t2), c.at(i+1), c.at(l+1), c.at(j-1))
	case LoopInt1n:
		p.extendedLength(Internal, ll+1)
		e.asymmetry(p, ll-ls)
		p.cell(MismatchInternal1n, 1, int(t1), c.at(i+1), c.at(j-1))
		p.cell(MismatchInternal1n, 1, int(t2), c.at(l+1), c.at(k-1))
	case LoopInt22:
		p.cell(Int22, 1, int(t1), int(t2), c.at(i+1), c.at(k-1), c.at(l+1), c.at(j-1))
	case LoopInt23:
		p.loopLength(Internal, ls+ll)
		p.cell(Ninio, 1, 0)
		p.cell(MismatchInternal23, 1, int(t1), c.at(i+1), c.at(j-1))
		p.cell(MismatchInternal23, 1, int(t2), c.at(l+1), c.at(k-1))
	case LoopGeneric:
		p.extendedLength(Internal, ls+ll)
		e.asymmetry(p, ll-ls)
		p.cell(MismatchInternal, 1, int(t1), c.at(i+1), c.at(j-1))
		p.cell(MismatchInternal, 1, int(t2), c.at(l+1), c.at(k-1))
	}
	p.fail(c.err)
}

// asymmetry adds max(max_ninio, asym·ninio). The operand is chosen here so
// the adjoint differentiates the branch the score took.
func (e *Engine) asymmetry(p *plan, asym int) {
	maxNinio, err := e.read[MaxNinio].At(0)
	if err != nil {
		p.fail(err)
		return
	}
	ninio, err := e.read[Ninio].At(0)
	if err != nil {
		p.fail(err)
		return
	}
	if maxNinio > float64(asym)*ninio {
		p.cell(MaxNinio, 1, 0)
	} else {
		p.cell(Ninio, float64(asym), 0)
	}
}

// multiLoop lowers the closing pair of a multibranch loop, seen from inside
// the loop as (j,i).
func (e *Engine) multiLoop(p *plan, s seq.Seq, i, j int) {
	c := cursor{s: s}
	t := c.pair(j, i)
	p.cell(MismatchMulti, 1, int(t), c.at(j-1), c.at(i+1))
	if t.Weak() {
		p.cell(TerminalAU, 1, 0)
	}
	p.cell(MLIntern, 1, 0)
	p.cell(MLClosing, 1, 0)
	p.fail(c.err)
}

// helixEnd lowers the flanking contribution of a helix end (i,j): a mismatch
// when both neighbors are real positions, a dangle when only one is.
func (e *Engine) helixEnd(p *plan, s seq.Seq, i, j int, mismatch Family) {
	c := cursor{s: s}
	t := c.pair(i, j)
	has5, has3 := s.InRange(i-1), s.InRange(j+1)
	switch {
	case has5 && has3:
		p.cell(mismatch, 1, int(t), c.at(i-1), c.at(j+1))
	case has5:
		p.cell(Dangle5, 1, int(t), c.at(i-1))
	case has3:
		p.cell(Dangle3, 1, int(t), c.at(j+1))
	}
	if t.Weak() {
		p.cell(TerminalAU, 1, 0)
	}
	p.fail(c.err)
}

func (e *Engine) multiPaired(p *plan, s seq.Seq, i, j int) {
	e.helixEnd(p, s, i, j, MismatchMulti)
	p.cell(MLIntern, 1, 0)
}

func (e *Engine) externalPaired(p *plan, s seq.Seq, i, j int) {
	e.helixEnd(p, s, i, j, MismatchExternal)
}

func (e *Engine) multiUnpaired(p *plan) {
	p.cell(MLBase, 1, 0)
}
