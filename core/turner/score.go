package turner

import "nnfold-core/seq"

// Coordinates are 1-based positions into s (see seq.Encode). Each Score*
// method has a Count* twin that adds v times the derivative of the score
// with respect to every parameter cell it read.

// ScoreHairpin is the energy of the hairpin loop closed by (i,j).
func (e *Engine) ScoreHairpin(s seq.Seq, i, j int) (float64, error) {
	var p plan
	e.hairpin(&p, s, i, j)
	return e.score(&p)
}

func (e *Engine) CountHairpin(s seq.Seq, i, j int, v float64) error {
	var p plan
	e.hairpin(&p, s, i, j)
	return e.count(&p, v)
}

// ScoreSingleLoop is the energy of the stack, bulge or internal loop between
// the outer pair (i,j) and the inner pair (l,k). Note the inner pair order.
func (e *Engine) ScoreSingleLoop(s seq.Seq, i, j, k, l int) (float64, error) {
	var p plan
	e.singleLoop(&p, s, i, j, k, l)
	return e.score(&p)
}

func (e *Engine) CountSingleLoop(s seq.Seq, i, j, k, l int, v float64) error {
	var p plan
	e.singleLoop(&p, s, i, j, k, l)
	return e.count(&p, v)
}

// ScoreMultiLoop is the closing-pair energy of a multibranch loop at (i,j).
func (e *Engine) ScoreMultiLoop(s seq.Seq, i, j int) (float64, error) {
	var p plan
	e.multiLoop(&p, s, i, j)
	return e.score(&p)
}

func (e *Engine) CountMultiLoop(s seq.Seq, i, j int, v float64) error {
	var p plan
	e.multiLoop(&p, s, i, j)
	return e.count(&p, v)
}

// ScoreMultiPaired is the energy of a branch helix end (i,j) inside a
// multibranch loop.
func (e *Engine) ScoreMultiPaired(s seq.Seq, i, j int) (float64, error) {
	var p plan
	e.multiPaired(&p, s, i, j)
	return e.score(&p)
}

func (e *Engine) CountMultiPaired(s seq.Seq, i, j int, v float64) error {
	var p plan
	e.multiPaired(&p, s, i, j)
	return e.count(&p, v)
}

// ScoreMultiUnpaired is the per-base energy of an unpaired base in a
// multibranch loop; it does not depend on i.
func (e *Engine) ScoreMultiUnpaired(s seq.Seq, i int) (float64, error) {
	var p plan
	e.multiUnpaired(&p)
	return e.score(&p)
}

func (e *Engine) CountMultiUnpaired(s seq.Seq, i int, v float64) error {
	var p plan
	e.multiUnpaired(&p)
	return e.count(&p, v)
}

// ScoreExternalPaired is the energy of a helix end (i,j) in the exterior
// loop.
func (e *Engine) ScoreExternalPaired(s seq.Seq, i, j int) (float64, error) {
	var p plan
	e.externalPaired(&p, s, i, j)
	return e.score(&p)
}

func (e *Engine) CountExternalPaired(s seq.Seq, i, j int, v float64) error {
	var p plan
	e.externalPaired(&p, s, i, j)
	return e.count(&p, v)
}
