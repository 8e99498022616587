// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"nnfold/pkg/api"
)

// Options shape every score writer.
type Options struct {
	Header  bool // column header line (text only)
	Weights bool // emit the weight column/field
}

// StartFunc starts a writer goroutine. Callers send rows, close the channel,
// then read exactly one error.
type StartFunc func(out io.Writer, opt Options, bufSize int) (chan<- api.MotifScoreV1, <-chan error)

// ScoreWriters maps an output format to its writer.
var ScoreWriters = map[string]StartFunc{}

// Register installs fn for format (last registration wins).
func Register(format string, fn StartFunc) { ScoreWriters[format] = fn }

// Formats lists registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(ScoreWriters))
	for f := range ScoreWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StartScoreWriter dispatches on format. An unknown format still returns a
// usable channel; the error arrives on the done channel.
func StartScoreWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- api.MotifScoreV1, <-chan error) {
	if fn, ok := ScoreWriters[format]; ok {
		return fn(out, opt, bufSize)
	}
	in := make(chan api.MotifScoreV1, 1)
	done := make(chan error, 1)
	go func() {
		for range in {
		}
		done <- fmt.Errorf("unknown score format %q (no writer registered)", format)
	}()
	return in, done
}
