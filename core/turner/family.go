package turner

import "nnfold-core/seq"

// Family names one parameter table of the nearest-neighbor model.
type Family int

const (
	Stack Family = iota
	Hairpin
	Bulge
	Internal
	MismatchExternal
	MismatchHairpin
	MismatchInternal
	MismatchInternal1n
	MismatchInternal23
	MismatchMulti
	Int11
	Int21
	Int22
	Dangle5
	Dangle3
	MLBase
	MLClosing
	MLIntern
	Ninio
	MaxNinio
	DuplexInit
	TerminalAU
	LXC

	NumFamilies
)

// AtLeastSuffix marks the cumulative variant of a length family.
const AtLeastSuffix = "_at_least"

// MaxLoop is the longest loop with a tabulated energy; longer loops are
// extrapolated logarithmically from it.
const MaxLoop = 30

const (
	pt = seq.NumPairTypes
	ns = seq.NumSymbols
)

var familyInfo = [NumFamilies]struct {
	name  string
	shape []int
	// minLen > 0 marks a length family that may be given as "at least".
	minLen int
}{
	Stack:              {"stack", []int{pt, pt}, 0},
	Hairpin:            {"hairpin", []int{MaxLoop + 1}, 4},
	Bulge:              {"bulge", []int{MaxLoop + 1}, 2},
	Internal:           {"internal", []int{MaxLoop + 1}, 3},
	MismatchExternal:   {"mismatch_external", []int{pt, ns, ns}, 0},
	MismatchHairpin:    {"mismatch_hairpin", []int{pt, ns, ns}, 0},
	MismatchInternal:   {"mismatch_internal", []int{pt, ns, ns}, 0},
	MismatchInternal1n: {"mismatch_internal_1n", []int{pt, ns, ns}, 0},
	MismatchInternal23: {"mismatch_internal_23", []int{pt, ns, ns}, 0},
	MismatchMulti:      {"mismatch_multi", []int{pt, ns, ns}, 0},
	Int11:              {"int11", []int{pt, pt, ns, ns}, 0},
	Int21:              {"int21", []int{pt, pt, ns, ns, ns}, 0},
	Int22:              {"int22", []int{pt, pt, ns, ns, ns, ns}, 0},
	Dangle5:            {"dangle5", []int{pt, ns}, 0},
	Dangle3:            {"dangle3", []int{pt, ns}, 0},
	MLBase:             {"ml_base", []int{1}, 0},
	MLClosing:          {"ml_closing", []int{1}, 0},
	MLIntern:           {"ml_intern", []int{1}, 0},
	Ninio:              {"ninio", []int{1}, 0},
	MaxNinio:           {"max_ninio", []int{1}, 0},
	DuplexInit:         {"duplex_init", []int{1}, 0},
	TerminalAU:         {"terminalAU", []int{1}, 0},
	LXC:                {"lxc", []int{1}, 0},
}

// Name is the base table name of f.
func (f Family) Name() string {
	if f < 0 || f >= NumFamilies {
		return "unknown"
	}
	return familyInfo[f].name
}

func (f Family) String() string { return f.Name() }

// Rank is the number of index axes a table for f must have.
func (f Family) Rank() int { return len(familyInfo[f].shape) }

// Shape is the conventional extent of f's table. Binding checks only the
// rank; callers building fresh tables use this.
func (f Family) Shape() []int { return append([]int(nil), familyInfo[f].shape...) }

// MinLength is the first loop length summed by an "at least" table, or 0 for
// families without one.
func (f Family) MinLength() int { return familyInfo[f].minLen }

// HasAtLeast reports whether f accepts a cumulative variant.
func (f Family) HasAtLeast() bool { return familyInfo[f].minLen > 0 }

// Families lists every family in declaration order.
func Families() []Family {
	out := make([]Family, NumFamilies)
	for f := range out {
		out[f] = Family(f)
	}
	return out
}
