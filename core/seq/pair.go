package seq

// PairType classifies an ordered base pair. 0 is "no pair"; 1..6 are
// CG, GC, GU, UG, AU, UA.
type PairType uint8

const (
	NoPair PairType = iota
	PairCG
	PairGC
	PairGU
	PairUG
	PairAU
	PairUA
)

// NumPairTypes is the extent of every pair-type axis in the energy tables.
const NumPairTypes = 7

var pairTable = [NumSymbols][NumSymbols]PairType{
	// row: 5' base, col: 3' base, both ordered _ A C G U
	{0, 0, 0, 0, 0},           // _
	{0, 0, 0, 0, PairAU},      // A
	{0, 0, 0, PairCG, 0},      // C
	{0, 0, PairGC, 0, PairGU}, // G
	{0, PairUA, 0, PairUG, 0}, // U
}

// Classify returns the pair type of (a, b). Symbols outside the alphabet
// never pair.
func Classify(a, b Symbol) PairType {
	if a >= NumSymbols || b >= NumSymbols {
		return NoPair
	}
	return pairTable[a][b]
}

// Weak reports whether the pair takes a terminal AU/GU penalty.
func (t PairType) Weak() bool { return t > PairGC }

func (t PairType) String() string {
	switch t {
	case PairCG:
		return "CG"
	case PairGC:
		return "GC"
	case PairGU:
		return "GU"
	case PairUG:
		return "UG"
	case PairAU:
		return "AU"
	case PairUA:
		return "UA"
	default:
		return "--"
	}
}
