package cli

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

// splitArgs separates flags (with their values) from positionals so that
// FASTA paths may appear anywhere on the command line. "--" ends flags.
func splitArgs(fs *flag.FlagSet, argv []string) (flags, pos []string) {
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		switch {
		case a == "--":
			return flags, append(pos, argv[i+1:]...)
		case a == "-" || !strings.HasPrefix(a, "-"):
			pos = append(pos, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBool(f) && i+1 < len(argv) {
			flags = append(flags, argv[i+1])
			i++
		}
	}
	return flags, pos
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// expandGlobs expands shell-style patterns the shell left unexpanded.
func expandGlobs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == "-" || !strings.ContainsAny(p, "*?[") {
			out = append(out, p)
			continue
		}
		m, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", p, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", p)
		}
		out = append(out, m...)
	}
	return out, nil
}
