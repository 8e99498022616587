package motif

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a motif list: whitespace-separated `seqID kind coords... [weight]`
// per line, blank lines and '#' comments skipped. name labels errors.
// Lines without a weight column take defaultWeight.
func Parse(r io.Reader, name string, defaultWeight float64) ([]Motif, error) {
	var list []Motif
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s:%d: expected seqID kind coords..., got %d columns", name, ln, len(fields))
		}
		kind, ok := ParseKind(fields[1])
		if !ok {
			return nil, fmt.Errorf("%s:%d: unknown motif kind %q", name, ln, fields[1])
		}
		n := kind.Arity()
		rest := fields[2:]
		if len(rest) != n && len(rest) != n+1 {
			return nil, fmt.Errorf("%s:%d: %s expects %d coordinates and an optional weight, got %d columns", name, ln, kind, n, len(rest))
		}
		m := Motif{SeqID: fields[0], Kind: kind, Coords: make([]int, n), Weight: defaultWeight, Line: ln}
		for k := 0; k < n; k++ {
			v, err := strconv.Atoi(rest[k])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad coordinate %q", name, ln, rest[k])
			}
			m.Coords[k] = v
		}
		if len(rest) == n+1 {
			w, err := strconv.ParseFloat(rest[n], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad weight %q", name, ln, rest[n])
			}
			m.Weight = w
		}
		list = append(list, m)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// LoadTSV parses the motif list at path ("-" for stdin).
func LoadTSV(path string, defaultWeight float64) ([]Motif, error) {
	if path == "-" {
		return Parse(os.Stdin, "<stdin>", defaultWeight)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Parse(fh, path, defaultWeight)
}
