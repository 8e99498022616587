package cli

import (
	"flag"
	"fmt"

	"nnfold/internal/version"
)

// NewFlagSet returns a ContinueOnError FlagSet whose Usage prints the
// grouped nnfold-score help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s: nearest-neighbor loop energies and parameter gradients\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage: %s -params FILE -motifs FILE [options] [FASTA ...]\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -params file          Parameter tables (JSON) [*]")
		fmt.Fprintln(out, "  -motifs file          Motif list (TSV: seqID kind coords... [weight]) [*]")
		fmt.Fprintln(out, "  -sequences file       FASTA file(s) (repeatable, .gz, or '-' for STDIN) [*]")

		fmt.Fprintln(out, "\nGradients:")
		fmt.Fprintf(out, "  -count                Accumulate weighted parameter gradients [%s]\n", def("count"))
		fmt.Fprintf(out, "  -weight float         Weight for motifs without a weight column [%s]\n", def("weight"))
		fmt.Fprintln(out, "  -grad-out file        Write merged gradients as a parameter file")
		fmt.Fprintf(out, "  -store string         Snapshot store: memory | sqlite [%s]\n", def("store"))
		fmt.Fprintln(out, "  -db-path file         SQLite database for -store sqlite")
		fmt.Fprintln(out, "  -run-id string        Snapshot run ID (existing runs are continued; default: new UUID)")
		fmt.Fprintln(out, "  -list-runs            List run IDs in the snapshot store and exit")

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -threads int          Worker threads (0=$%s or all CPUs) [%s]\n", EnvThreads, def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -output string        Output: text | json | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "  -no-header            Suppress header line [%s]\n", def("no-header"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -quiet                Suppress non-essential warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, -version          Print version and exit")
		fmt.Fprintln(out, "  -h                    Show this help and exit")
	}
	return fs
}
