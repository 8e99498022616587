// Package scoreapp is the nnfold-score command: load parameter tables,
// sequences and a motif list, score every motif, and optionally accumulate
// and persist the weighted parameter gradients.
package scoreapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"nnfold-core/param"
	"nnfold-core/seq"
	"nnfold-core/turner"

	"nnfold/internal/cli"
	"nnfold/internal/cmdutil"
	"nnfold/internal/fasta"
	"nnfold/internal/motif"
	"nnfold/internal/paramfile"
	"nnfold/internal/pipeline"
	"nnfold/internal/store"
	"nnfold/internal/version"
	"nnfold/internal/writers"
	"nnfold/pkg/api"
)

const prog = "nnfold-score"

// Exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitCancelled = 130
)

// Getenv is swapped in tests.
var Getenv = os.Getenv

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(prog)
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return flush(outw, stderr, ExitOK)
		}
		cmdutil.Errorf(stderr, prog, "%v", err)
		fs.Usage()
		return flush(outw, stderr, ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", prog, version.Version)
		return flush(outw, stderr, ExitOK)
	}

	if opts.ListRuns {
		if code := listRuns(parent, opts, outw, stderr); code != ExitOK {
			_ = outw.Flush()
			return code
		}
		return flush(outw, stderr, ExitOK)
	}

	threads, err := cli.ResolveThreads(opts.Threads, Getenv)
	if err != nil {
		cmdutil.Warnf(stderr, opts.Quiet, "%v", err)
	}

	code := run(parent, opts, threads, outw, stderr)
	if code != ExitOK {
		_ = outw.Flush()
		return code
	}
	return flush(outw, stderr, ExitOK)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func flush(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		cmdutil.Errorf(stderr, prog, "%v", err)
		return ExitFailure
	}
	return code
}

func fail(ctx context.Context, stderr io.Writer, err error) int {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return ExitCancelled
	}
	cmdutil.Errorf(stderr, prog, "%v", err)
	return ExitFailure
}

func run(ctx context.Context, opts cli.Options, threads int, out io.Writer, stderr io.Writer) int {
	params, err := paramfile.Load(opts.ParamsFile)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	grads := param.ZerosLike(params)
	eng, err := turner.New(params, grads)
	if err != nil {
		return fail(ctx, stderr, fmt.Errorf("%s: %w", opts.ParamsFile, err))
	}

	motifs, err := motif.LoadTSV(opts.MotifFile, opts.Weight)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	if len(motifs) == 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "%s: no motifs", opts.MotifFile)
	}

	recs, err := fasta.Load(ctx, opts.SeqFiles)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	items, err := resolve(opts, motifs, recs, stderr)
	if err != nil {
		return fail(ctx, stderr, err)
	}

	// Snapshot store and prior gradients of a continued run.
	var (
		st      store.Store
		runID   string
		counted int
	)
	if opts.Count {
		st, err = store.NewStore(opts.Store, opts.DBPath)
		if err != nil {
			return fail(ctx, stderr, err)
		}
		defer func() { _ = store.CloseIfSupported(st) }()
		if err := st.Init(ctx); err != nil {
			return fail(ctx, stderr, err)
		}
		runID = opts.RunID
		if runID == "" {
			runID = store.NewRunID()
		}
		prior, ok, err := st.GetSnapshot(ctx, runID)
		if err != nil {
			return fail(ctx, stderr, err)
		}
		if ok {
			if err := addPrior(grads, prior.Gradients); err != nil {
				return fail(ctx, stderr, fmt.Errorf("run %s: %w", runID, err))
			}
			counted = prior.Motifs
			cmdutil.Warnf(stderr, opts.Quiet, "continuing run %s (%d motifs already counted)", runID, counted)
		}
	}

	in, done := writers.StartScoreWriter(out, opts.Output, writers.Options{Header: opts.Header, Weights: opts.Count}, 64)
	n, runErr := cmdutil.RunStream(ctx,
		pipeline.Config{Threads: threads, Count: opts.Count},
		pipeline.EngineKernel{Engine: eng}, grads, items,
		func(r pipeline.Result) (bool, api.MotifScoreV1, error) {
			return true, toAPIScore(r, opts.Count), nil
		},
		func(v api.MotifScoreV1) error {
			in <- v
			return nil
		},
	)
	close(in)
	werr := <-done
	if runErr != nil {
		return fail(ctx, stderr, runErr)
	}
	if werr != nil {
		return fail(ctx, stderr, werr)
	}
	if !opts.Count {
		return ExitOK
	}

	if opts.GradOut != "" {
		if err := paramfile.Save(opts.GradOut, grads); err != nil {
			return fail(ctx, stderr, err)
		}
	}
	snap := store.NewSnapshot(runID, paramfile.ToWire(grads))
	snap.ParamsFile = opts.ParamsFile
	snap.Motifs = counted + n
	if err := st.SaveSnapshot(ctx, snap); err != nil {
		return fail(ctx, stderr, err)
	}
	cmdutil.Infof(stderr, opts.Quiet, "run %s: %d motifs counted", runID, snap.Motifs)
	return ExitOK
}

// listRuns prints the run IDs held by the snapshot store, one per line.
func listRuns(ctx context.Context, opts cli.Options, out io.Writer, stderr io.Writer) int {
	st, err := store.NewStore(opts.Store, opts.DBPath)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	defer func() { _ = store.CloseIfSupported(st) }()
	if err := st.Init(ctx); err != nil {
		return fail(ctx, stderr, err)
	}
	ids, err := st.ListRuns(ctx)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return fail(ctx, stderr, err)
		}
	}
	return ExitOK
}

// resolve pairs each motif with its encoded sequence and checks coordinates.
func resolve(opts cli.Options, motifs []motif.Motif, recs map[string]fasta.Record, stderr io.Writer) ([]pipeline.Item, error) {
	encoded := make(map[string]seq.Seq, len(recs))
	items := make([]pipeline.Item, 0, len(motifs))
	for _, m := range motifs {
		s, ok := encoded[m.SeqID]
		if !ok {
			rec, found := recs[m.SeqID]
			if !found {
				return nil, fmt.Errorf("%s:%d: unknown sequence %q", opts.MotifFile, m.Line, m.SeqID)
			}
			s = seq.Encode(string(rec.Seq))
			if n := unknownSymbols(s); n > 0 {
				cmdutil.Warnf(stderr, opts.Quiet, "sequence %s: %d symbols outside ACGU/T cannot pair", rec.ID, n)
			}
			encoded[m.SeqID] = s
		}
		if err := m.Check(s.Len()); err != nil {
			return nil, fmt.Errorf("%s:%d: %v", opts.MotifFile, m.Line, err)
		}
		items = append(items, pipeline.Item{Motif: m, Seq: s, SourceFile: opts.MotifFile})
	}
	if unused := len(recs) - len(encoded); unused > 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "%d sequence(s) not referenced by any motif", unused)
	}
	return items, nil
}

// toAPIScore converts a pipeline result to the stable wire schema (v1).
// The weight is attached only when gradients were counted.
func toAPIScore(r pipeline.Result, counted bool) api.MotifScoreV1 {
	m := r.Item.Motif
	v := api.MotifScoreV1{
		Index:      r.Index + 1,
		SequenceID: m.SeqID,
		Kind:       m.Kind.String(),
		Coords:     append([]int(nil), m.Coords...),
		LoopKind:   m.LoopKind(),
		Energy:     r.Energy,
		SourceFile: r.Item.SourceFile,
	}
	if counted {
		v.Weight = m.Weight
	}
	return v
}

func unknownSymbols(s seq.Seq) int {
	n := 0
	for p := 1; p <= s.Len(); p++ {
		if s[p] == seq.N {
			n++
		}
	}
	return n
}

func addPrior(grads param.Set, prior api.ParamFileV1) error {
	set, err := paramfile.FromWire(prior)
	if err != nil {
		return err
	}
	for name := range set {
		if _, ok := grads[name]; !ok {
			return &param.ShapeError{Name: name, Reason: "stored gradient for a table not in the parameter file"}
		}
	}
	return grads.Merge(set)
}
