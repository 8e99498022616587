// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// 64 KiB buffered writers are pooled across writer goroutines.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
//   - encode: fn to encode one value (convert to wire type & enc.Encode)
//   - isBroken: recognizer for broken/closed pipe errors to suppress them
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	return start(out, bufSize, isBroken, func(bw *bufio.Writer, in <-chan T) error {
		enc := json.NewEncoder(bw)
		for v := range in {
			if err := encode(enc, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// StartArray is Start for a single indented JSON array. Items are written as
// they arrive, so memory stays flat for long runs; an empty input yields "[]".
func StartArray[T any](out io.Writer, bufSize int, wire func(T) any, isBroken func(error) bool) (chan<- T, <-chan error) {
	return start(out, bufSize, isBroken, func(bw *bufio.Writer, in <-chan T) error {
		n := 0
		for v := range in {
			b, err := json.MarshalIndent(wire(v), "  ", "  ")
			if err != nil {
				return err
			}
			sep := ",\n  "
			if n == 0 {
				sep = "[\n  "
			}
			if _, err := bw.WriteString(sep); err != nil {
				return err
			}
			if _, err := bw.Write(b); err != nil {
				return err
			}
			n++
		}
		end := "\n]\n"
		if n == 0 {
			end = "[]\n"
		}
		_, err := bw.WriteString(end)
		return err
	})
}

func start[T any](out io.Writer, bufSize int, isBroken func(error) bool, body func(*bufio.Writer, <-chan T) error) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		if err := body(bw, in); err != nil {
			// Keep draining so senders never block on a dead writer.
			for range in {
			}
			if isBroken(err) {
				err = nil
			}
			done <- err
			return
		}
		if err := bw.Flush(); err != nil && !isBroken(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}
