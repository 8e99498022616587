package paramfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nnfold-core/param"
)

const small = `{
  "tables": {
    "ml_base": {"shape": [1], "data": [0.5]},
    "stack":   {"shape": [2, 3], "data": [1, 2, 3, 4, 5, 6]}
  }
}`

func TestDecode(t *testing.T) {
	set, err := Decode(strings.NewReader(small))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := set.Names(); len(got) != 2 || got[0] != "ml_base" || got[1] != "stack" {
		t.Fatalf("names=%v", got)
	}
	v, err := set["stack"].At(1, 2)
	if err != nil || v != 6 {
		t.Fatalf("stack[1][2]=%v err=%v", v, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name, in string
		shape    bool
	}{
		{"not json", `{`, false},
		{"unknown field", `{"tables": {}, "extra": 1}`, false},
		{"no tables", `{"tables": {}}`, false},
		{"future schema", `{"schema_version": 99, "tables": {"a": {"shape": [1], "data": [0]}}}`, false},
		{"size mismatch", `{"tables": {"a": {"shape": [2, 2], "data": [1, 2, 3]}}}`, true},
		{"negative extent", `{"tables": {"a": {"shape": [-1], "data": []}}}`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(c.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if c.shape != errors.Is(err, param.ErrShapeMismatch) {
				t.Fatalf("ErrShapeMismatch=%v for %v", !c.shape, err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	in, err := Decode(strings.NewReader(small))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	fn := filepath.Join(t.TempDir(), "grad.json")
	if err := Save(fn, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(fn)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, name := range in.Names() {
		a, b := in[name].Data(), out[name].Data()
		if len(a) != len(b) {
			t.Fatalf("%s: len %d vs %d", name, len(a), len(b))
		}
		for k := range a {
			if a[k] != b[k] {
				t.Fatalf("%s[%d]: %v vs %v", name, k, a[k], b[k])
			}
		}
	}
	raw, _ := os.ReadFile(fn)
	if !bytes.Contains(raw, []byte(`"schema_version": 1`)) {
		t.Fatalf("schema version not written:\n%s", raw)
	}
}

func TestFromWireCopies(t *testing.T) {
	in, _ := Decode(strings.NewReader(small))
	w := ToWire(in)
	out, err := FromWire(w)
	if err != nil {
		t.Fatalf("from wire: %v", err)
	}
	w.Tables["ml_base"].Data[0] = 99
	if v, _ := out["ml_base"].At(0); v != 0.5 {
		t.Fatalf("FromWire aliased wire data: %v", v)
	}
	if v, _ := in["ml_base"].At(0); v != 0.5 {
		t.Fatalf("ToWire aliased table data: %v", v)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}
