package cmdutil

import (
	"fmt"
	"io"
)

// Warnf prints a WARN: line unless quiet.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Errorf prints a fatal "<prog>: error: ..." line. Errors are never quiet.
func Errorf(dst io.Writer, prog string, format string, a ...any) {
	_, _ = fmt.Fprintf(dst, prog+": error: "+format+"\n", a...)
}

// Infof prints a progress line unless quiet.
func Infof(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, format+"\n", a...)
}
