package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

type row struct {
	N int `json:"n"`
}

func never(error) bool { return false }

func TestStartJSONL(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[int](&buf, 2, func(enc *json.Encoder, v int) error {
		return enc.Encode(row{N: v})
	}, never)
	for i := 1; i <= 3; i++ {
		in <- i
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer: %v", err)
	}
	if got, want := buf.String(), "{\"n\":1}\n{\"n\":2}\n{\"n\":3}\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStartArray(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		var buf bytes.Buffer
		in, done := StartArray[int](&buf, 0, func(v int) any { return row{N: v} }, never)
		for i := 0; i < n; i++ {
			in <- i
		}
		close(in)
		if err := <-done; err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		var rows []row
		if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
			t.Fatalf("n=%d: not a JSON array: %v\n%s", n, err, buf.String())
		}
		if len(rows) != n {
			t.Fatalf("n=%d: decoded %d rows", n, len(rows))
		}
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestStartSuppressesBrokenPipe(t *testing.T) {
	isClosed := func(err error) bool { return errors.Is(err, io.ErrClosedPipe) }
	in, done := Start[int](failWriter{io.ErrClosedPipe}, 1, func(enc *json.Encoder, v int) error {
		return enc.Encode(v)
	}, isClosed)
	in <- 1
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("closed pipe should be suppressed: %v", err)
	}

	in, done = Start[int](failWriter{io.ErrShortWrite}, 1, func(enc *json.Encoder, v int) error {
		return enc.Encode(v)
	}, isClosed)
	in <- 1
	close(in)
	if err := <-done; !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("want ErrShortWrite, got %v", err)
	}
}
