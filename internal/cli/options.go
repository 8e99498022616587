// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// EnvThreads supplies the worker count when -threads is 0.
const EnvThreads = "NNFOLD_THREADS"

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	ParamsFile string
	MotifFile  string
	SeqFiles   []string

	// Gradients
	Count   bool
	Weight  float64
	GradOut string
	Store   string
	DBPath  string
	RunID   string

	ListRuns bool // print stored run IDs and exit

	// Performance
	Threads int // 0 = EnvThreads or all CPUs

	// Output
	Output string
	Header bool // true unless -no-header

	Quiet   bool
	Version bool
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Positional arguments are FASTA files, globbed when the shell did not.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.ParamsFile, "params", "", "parameter tables (JSON) [*]")
	fs.StringVar(&opt.MotifFile, "motifs", "", "motif list (TSV) [*]")
	var seqs stringSlice
	fs.Var(&seqs, "sequences", "FASTA file(s) (repeatable or '-') [*]")

	fs.BoolVar(&opt.Count, "count", false, "accumulate parameter gradients [false]")
	fs.Float64Var(&opt.Weight, "weight", 1, "default motif weight [1]")
	fs.StringVar(&opt.GradOut, "grad-out", "", "write merged gradients (JSON)")
	fs.StringVar(&opt.Store, "store", "memory", "snapshot store: memory | sqlite [memory]")
	fs.StringVar(&opt.DBPath, "db-path", "", "sqlite database path")
	fs.StringVar(&opt.RunID, "run-id", "", "snapshot run id")
	fs.BoolVar(&opt.ListRuns, "list-runs", false, "list stored run ids and exit [false]")

	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = $"+EnvThreads+" or all CPUs) [0]")

	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | jsonl [text]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := splitArgs(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader
	if err := validateStore(opt); err != nil {
		return opt, err
	}
	if opt.ListRuns {
		return opt, nil
	}

	files, err := expandGlobs(append([]string(seqs), posArgs...))
	if err != nil {
		return opt, err
	}
	opt.SeqFiles = files

	// Validation
	if opt.ParamsFile == "" {
		return opt, errors.New("-params is required")
	}
	if opt.MotifFile == "" {
		return opt, errors.New("-motifs is required")
	}
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one -sequences file is required")
	}
	stdin := 0
	for _, f := range opt.SeqFiles {
		if f == "-" {
			stdin++
		}
	}
	if stdin > 1 || (stdin == 1 && opt.MotifFile == "-") {
		return opt, errors.New("standard input can be read only once")
	}
	if opt.Threads < 0 {
		return opt, errors.New("-threads must be ≥ 0")
	}
	switch opt.Output {
	case "text", "json", "jsonl":
	default:
		return opt, fmt.Errorf("invalid -output %q", opt.Output)
	}
	if !opt.Count {
		switch {
		case opt.GradOut != "":
			return opt, errors.New("-grad-out requires -count")
		case opt.RunID != "":
			return opt, errors.New("-run-id requires -count")
		case opt.Store != "memory":
			return opt, errors.New("-store requires -count")
		}
	}
	return opt, nil
}

func validateStore(opt Options) error {
	switch opt.Store {
	case "memory":
	case "sqlite":
		if opt.DBPath == "" {
			return errors.New("-store sqlite requires -db-path")
		}
	default:
		return fmt.Errorf("invalid -store %q", opt.Store)
	}
	return nil
}

// ResolveThreads picks the worker count: the flag if positive, else a
// positive integer from EnvThreads, else all CPUs. A malformed env value is
// reported and ignored.
func ResolveThreads(flagVal int, getenv func(string) string) (int, error) {
	if flagVal > 0 {
		return flagVal, nil
	}
	if s := strings.TrimSpace(getenv(EnvThreads)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return runtime.NumCPU(), fmt.Errorf("ignoring %s=%q: want a positive integer", EnvThreads, s)
		}
		return n, nil
	}
	return runtime.NumCPU(), nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
