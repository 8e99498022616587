// Package paramfile reads and writes named parameter tables as JSON
// (pkg/api.ParamFileV1). It is the host-side owner of parameter storage;
// the scoring core only sees param.Set.
package paramfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"nnfold-core/param"

	"nnfold/pkg/api"
)

const SchemaVersion = 1

// Decode parses a parameter file. Every table must carry a shape whose
// product equals the data length.
func Decode(r io.Reader) (param.Set, error) {
	var f api.ParamFileV1
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if f.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("schema_version %d is newer than supported %d", f.SchemaVersion, SchemaVersion)
	}
	if len(f.Tables) == 0 {
		return nil, fmt.Errorf("no tables")
	}
	return FromWire(f)
}

// Load reads a parameter file from disk.
func Load(path string) (param.Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	set, err := Decode(bufio.NewReader(fh))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ToWire converts a set to its wire form. Data slices are copied.
func ToWire(s param.Set) api.ParamFileV1 {
	f := api.ParamFileV1{SchemaVersion: SchemaVersion, Tables: make(map[string]api.TableV1, len(s))}
	for name, d := range s {
		f.Tables[name] = api.TableV1{
			Shape: append([]int(nil), d.Shape()...),
			Data:  append([]float64(nil), d.Data()...),
		}
	}
	return f
}

// FromWire is the inverse of ToWire. The resulting tables own their data.
func FromWire(f api.ParamFileV1) (param.Set, error) {
	set := make(param.Set, len(f.Tables))
	for name, t := range f.Tables {
		d, err := param.FromData(name, t.Shape, append([]float64(nil), t.Data...))
		if err != nil {
			return nil, err
		}
		set[name] = d
	}
	return set, nil
}

// Encode writes s as indented JSON. Table names come out sorted.
func Encode(w io.Writer, s param.Set) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToWire(s))
}

// Save writes s to path, replacing any existing file.
func Save(path string, s param.Set) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	if err := Encode(bw, s); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
