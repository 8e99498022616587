package turner

// LoopKind is the case a two-pair loop falls into. Scoring and counting both
// branch on it, so they always take the same path for the same input.
type LoopKind int

const (
	LoopInvalid LoopKind = iota
	LoopStack
	LoopBulge
	LoopInt11
	LoopInt21 // two unpaired on the 5' side, one on the 3' side
	LoopInt12
	LoopInt1n
	LoopInt22
	LoopInt23
	LoopGeneric
)

var loopNames = [...]string{"invalid", "stack", "bulge", "1x1", "2x1", "1x2", "1xn", "2x2", "2x3", "generic"}

func (k LoopKind) String() string {
	if k < 0 || int(k) >= len(loopNames) {
		return "invalid"
	}
	return loopNames[k]
}

// Classify picks the loop case from the unpaired run lengths on each side of
// a loop closed by two pairs. Negative lengths are LoopInvalid.
func Classify(l1, l2 int) LoopKind {
	if l1 < 0 || l2 < 0 {
		return LoopInvalid
	}
	ls, ll := minmax(l1, l2)
	switch {
	case ll == 0:
		return LoopStack
	case ls == 0:
		return LoopBulge
	case ls == 1 && ll == 1:
		return LoopInt11
	case l1 == 2 && l2 == 1:
		return LoopInt21
	case l1 == 1 && l2 == 2:
		return LoopInt12
	case ls == 1:
		return LoopInt1n
	case ls == 2 && ll == 2:
		return LoopInt22
	case ls == 2 && ll == 3:
		return LoopInt23
	default:
		return LoopGeneric
	}
}

func minmax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// SingleLoopKind classifies the loop between outer pair (i,j) and inner
// pair (l,k), using the same run lengths as ScoreSingleLoop.
func SingleLoopKind(i, j, k, l int) LoopKind {
	return Classify(k-i-1, j-l-1)
}
