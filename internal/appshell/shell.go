// Package appshell is the process entry shared by the commands: signal-aware
// context, default -h, and exit-code normalization.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is an application body. It returns the process exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// ExitCancelled is returned when a signal cancelled an otherwise clean run.
const ExitCancelled = 130

func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr, run)
	stop()
	os.Exit(code)
}

// Run invokes run with argv (defaulting to -h) and normalizes the exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer, run RunFunc) int {
	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = ExitCancelled
	}
	return code
}
