// core/seq/seq.go
// Integer coding of nucleotide sequences for loop-energy lookups.
//
// A sequence of length L is stored in L+2 slots. Real bases live at 1..L;
// slot 0 repeats base L and slot L+1 repeats base 1, so dangle/mismatch
// lookups one position past either end read the opposite terminus.

package seq

import "strings"

// Symbol is an encoded nucleotide: 0 (unknown), 1 A, 2 C, 3 G, 4 U/T.
type Symbol uint8

const (
	N Symbol = iota
	A
	C
	G
	U
)

// NumSymbols is the extent of every symbol axis in the energy tables.
const NumSymbols = 5

// Seq is an encoded, circularly padded sequence.
type Seq []Symbol

// Encode maps s to its padded integer form. Unrecognized characters become N.
func Encode(s string) Seq {
	L := len(s)
	out := make(Seq, L+2)
	for i := 0; i < L; i++ {
		out[i+1] = symbolOf(s[i])
	}
	out[0] = out[L]
	out[L+1] = out[1]
	return out
}

func symbolOf(b byte) Symbol {
	switch b {
	case 'A', 'a':
		return A
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	case 'U', 'u', 'T', 't':
		return U
	default:
		return N
	}
}

// Len returns the number of real positions (L).
func (s Seq) Len() int {
	if len(s) < 2 {
		return 0
	}
	return len(s) - 2
}

// InRange reports whether p addresses a real position 1..L.
func (s Seq) InRange(p int) bool { return p >= 1 && p <= s.Len() }

// String decodes the real positions back to ACGU, N for unknown.
func (s Seq) String() string {
	var b strings.Builder
	b.Grow(s.Len())
	for p := 1; p <= s.Len(); p++ {
		b.WriteByte("NACGU"[s[p]%NumSymbols])
	}
	return b.String()
}
