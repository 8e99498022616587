package motif

import (
	"strings"
	"testing"

	"nnfold-core/param"
	"nnfold-core/seq"
	"nnfold-core/turner"
)

const list = `# id	kind	coords	[weight]
s1	hairpin	1	9
s1	single	1	12	3	10	0.5

s2	multi	1	12
s2	multi_paired	2	11
s2	external_paired	1	12	2
s2	multi_unpaired	5
`

func TestParse(t *testing.T) {
	ms, err := Parse(strings.NewReader(list), "m.tsv", 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []struct {
		kind   Kind
		coords int
		weight float64
		line   int
	}{
		{Hairpin, 2, 1, 2},
		{Single, 4, 0.5, 3},
		{Multi, 2, 1, 5},
		{MultiPaired, 2, 1, 6},
		{ExternalPaired, 2, 2, 7},
		{MultiUnpaired, 1, 1, 8},
	}
	if len(ms) != len(want) {
		t.Fatalf("got %d motifs, want %d", len(ms), len(want))
	}
	for i, w := range want {
		m := ms[i]
		if m.Kind != w.kind || len(m.Coords) != w.coords || m.Weight != w.weight || m.Line != w.line {
			t.Errorf("motif %d: %+v, want %+v", i, m, w)
		}
	}
	if ms[1].Coords[2] != 3 || ms[1].Coords[3] != 10 {
		t.Errorf("single coords %v", ms[1].Coords)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"short line":   "s1 hairpin\n",
		"unknown kind": "s1 bulge 1 2\n",
		"arity":        "s1 single 1 2 3\n",
		"too many":     "s1 hairpin 1 2 3 4\n",
		"bad coord":    "s1 hairpin 1 x\n",
		"bad weight":   "s1 hairpin 1 9 heavy\n",
		"later line":   "# ok\ns1 hairpin 1 9\ns1 multi 1\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in), "m.tsv", 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "m.tsv:") {
				t.Fatalf("error lacks position: %v", err)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	for k := Kind(0); k < numKinds; k++ {
		back, ok := ParseKind(k.String())
		if !ok || back != k {
			t.Fatalf("%v does not round-trip", k)
		}
	}
	if _, ok := ParseKind("stack"); ok {
		t.Fatal("stack is not a motif kind")
	}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		m  Motif
		ok bool
	}{
		{Motif{Kind: Hairpin, Coords: []int{1, 9}}, true},
		{Motif{Kind: Hairpin, Coords: []int{9, 1}}, false},
		{Motif{Kind: Hairpin, Coords: []int{0, 9}}, false},
		{Motif{Kind: Hairpin, Coords: []int{1, 13}}, false},
		{Motif{Kind: Single, Coords: []int{1, 12, 3, 10}}, true},
		{Motif{Kind: Single, Coords: []int{1, 12, 10, 3}}, false},
		{Motif{Kind: MultiUnpaired, Coords: []int{12}}, true},
		{Motif{Kind: Multi, Coords: []int{1}}, false},
	}
	for _, c := range cases {
		if err := c.m.Check(12); (err == nil) != c.ok {
			t.Errorf("%v %v: err=%v, want ok=%v", c.m.Kind, c.m.Coords, err, c.ok)
		}
	}
}

func testEngine(t *testing.T) (*turner.Engine, param.Set) {
	t.Helper()
	ps := param.Set{}
	for _, f := range turner.Families() {
		d := param.NewDense(f.Name(), f.Shape()...)
		for k := range d.Data() {
			d.Data()[k] = float64((int(f)+k)%7) - 3
		}
		ps[f.Name()] = d
	}
	gs := param.ZerosLike(ps)
	e, err := turner.New(ps, gs)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e, gs
}

func TestDispatchMatchesEngine(t *testing.T) {
	e, gs := testEngine(t)
	ref := param.ZerosLike(gs)
	er, err := e.WithGradients(ref)
	if err != nil {
		t.Fatalf("WithGradients: %v", err)
	}
	s := seq.Encode("GCAGAAAACUGC")
	type calls struct {
		score func() (float64, error)
		count func() error
	}
	direct := map[Kind]calls{
		Hairpin: {
			func() (float64, error) { return e.ScoreHairpin(s, 4, 9) },
			func() error { return er.CountHairpin(s, 4, 9, 1) },
		},
		Single: {
			func() (float64, error) { return e.ScoreSingleLoop(s, 1, 12, 3, 10) },
			func() error { return er.CountSingleLoop(s, 1, 12, 3, 10, 1) },
		},
		Multi: {
			func() (float64, error) { return e.ScoreMultiLoop(s, 1, 12) },
			func() error { return er.CountMultiLoop(s, 1, 12, 1) },
		},
		MultiPaired: {
			func() (float64, error) { return e.ScoreMultiPaired(s, 2, 11) },
			func() error { return er.CountMultiPaired(s, 2, 11, 1) },
		},
		ExternalPaired: {
			func() (float64, error) { return e.ScoreExternalPaired(s, 2, 11) },
			func() error { return er.CountExternalPaired(s, 2, 11, 1) },
		},
		MultiUnpaired: {
			func() (float64, error) { return e.ScoreMultiUnpaired(s, 5) },
			func() error { return er.CountMultiUnpaired(s, 5, 1) },
		},
	}
	coords := map[Kind][]int{
		Hairpin: {4, 9}, Single: {1, 12, 3, 10}, Multi: {1, 12},
		MultiPaired: {2, 11}, ExternalPaired: {2, 11}, MultiUnpaired: {5},
	}
	for k, c := range direct {
		m := Motif{Kind: k, Coords: coords[k], Weight: 1}
		want, err := c.score()
		if err != nil {
			t.Fatalf("%v direct: %v", k, err)
		}
		got, err := m.Score(e, s)
		if err != nil || got != want {
			t.Fatalf("%v: got %v,%v want %v", k, got, err, want)
		}
		gs.Zero()
		ref.Zero()
		if err := m.Count(e, s); err != nil {
			t.Fatalf("%v count: %v", k, err)
		}
		if err := c.count(); err != nil {
			t.Fatalf("%v direct count: %v", k, err)
		}
		for name, g := range gs {
			want := ref[name].Data()
			for i, v := range g.Data() {
				if v != want[i] {
					t.Fatalf("%v: %s[%d]=%v want %v", k, name, i, v, want[i])
				}
			}
		}
	}
}

func TestLoopKind(t *testing.T) {
	m := Motif{Kind: Single, Coords: []int{1, 12, 3, 10}}
	if got := m.LoopKind(); got != "1x1" {
		t.Fatalf("LoopKind=%q want 1x1", got)
	}
	if got := (Motif{Kind: Hairpin, Coords: []int{1, 9}}).LoopKind(); got != "" {
		t.Fatalf("hairpin LoopKind=%q", got)
	}
}
