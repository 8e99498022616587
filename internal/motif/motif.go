// Package motif reads motif lists (one structural element per line) and
// dispatches each element to the matching turner.Engine operation.
package motif

import (
	"fmt"

	"nnfold-core/seq"
	"nnfold-core/turner"
)

// Kind names a structural element the engine can score.
type Kind int

const (
	Hairpin Kind = iota
	Single
	Multi
	MultiPaired
	ExternalPaired
	MultiUnpaired
	numKinds
)

var kindInfo = [numKinds]struct {
	name  string
	arity int
}{
	Hairpin:        {"hairpin", 2},
	Single:         {"single", 4},
	Multi:          {"multi", 2},
	MultiPaired:    {"multi_paired", 2},
	ExternalPaired: {"external_paired", 2},
	MultiUnpaired:  {"multi_unpaired", 1},
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// Arity is the number of 1-based coordinates the kind takes.
func (k Kind) Arity() int { return kindInfo[k].arity }

// ParseKind maps a TSV kind column to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k := Kind(0); k < numKinds; k++ {
		if kindInfo[k].name == s {
			return k, true
		}
	}
	return 0, false
}

// Motif is one line of a motif list.
type Motif struct {
	SeqID  string
	Kind   Kind
	Coords []int
	Weight float64
	Line   int // 1-based source line, 0 when built in code
}

// LoopKind reports the single-loop classification; other kinds report "".
func (m Motif) LoopKind() string {
	if m.Kind != Single {
		return ""
	}
	c := m.Coords
	return turner.SingleLoopKind(c[0], c[1], c[2], c[3]).String()
}

// Score evaluates the motif's free energy on s.
func (m Motif) Score(e *turner.Engine, s seq.Seq) (float64, error) {
	c := m.Coords
	switch m.Kind {
	case Hairpin:
		return e.ScoreHairpin(s, c[0], c[1])
	case Single:
		return e.ScoreSingleLoop(s, c[0], c[1], c[2], c[3])
	case Multi:
		return e.ScoreMultiLoop(s, c[0], c[1])
	case MultiPaired:
		return e.ScoreMultiPaired(s, c[0], c[1])
	case ExternalPaired:
		return e.ScoreExternalPaired(s, c[0], c[1])
	case MultiUnpaired:
		return e.ScoreMultiUnpaired(s, c[0])
	}
	return 0, fmt.Errorf("unknown motif kind %v", m.Kind)
}

// Count accumulates m.Weight times the motif's parameter gradient into the
// engine's gradient tables.
func (m Motif) Count(e *turner.Engine, s seq.Seq) error {
	c, v := m.Coords, m.Weight
	switch m.Kind {
	case Hairpin:
		return e.CountHairpin(s, c[0], c[1], v)
	case Single:
		return e.CountSingleLoop(s, c[0], c[1], c[2], c[3], v)
	case Multi:
		return e.CountMultiLoop(s, c[0], c[1], v)
	case MultiPaired:
		return e.CountMultiPaired(s, c[0], c[1], v)
	case ExternalPaired:
		return e.CountExternalPaired(s, c[0], c[1], v)
	case MultiUnpaired:
		return e.CountMultiUnpaired(s, c[0], v)
	}
	return fmt.Errorf("unknown motif kind %v", m.Kind)
}

// Check verifies coordinate order and that every coordinate lies in a
// sequence of length n.
func (m Motif) Check(n int) error {
	c := m.Coords
	if len(c) != m.Kind.Arity() {
		return fmt.Errorf("%s takes %d coordinates, got %d", m.Kind, m.Kind.Arity(), len(c))
	}
	for _, p := range c {
		if p < 1 || p > n {
			return fmt.Errorf("%s coordinate %d outside 1..%d", m.Kind, p, n)
		}
	}
	switch m.Kind {
	case Single:
		if !(c[0] < c[2] && c[2] < c[3] && c[3] < c[1]) {
			return fmt.Errorf("single loop needs i < k < l < j, got %v", c)
		}
	case MultiUnpaired:
	default:
		if c[0] >= c[1] {
			return fmt.Errorf("%s needs i < j, got %v", m.Kind, c)
		}
	}
	return nil
}
