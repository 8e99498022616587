// internal/fasta/reader_test.go
package fasta

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plain = `>hp1 first hairpin
GGGA
AACCC
; comment line
>hp2
acgu
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func writeGz(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(fn)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	gw.Close()
	fh.Close()
	return fn
}

func collect(t *testing.T, path string) []Record {
	t.Helper()
	var recs []Record
	if err := StreamCtx(context.Background(), path, func(r Record) error {
		recs = append(recs, r)
		return nil
	}); err != nil {
		t.Fatalf("stream %s: %v", path, err)
	}
	return recs
}

func TestStreamPlain(t *testing.T) {
	recs := collect(t, writeFile(t, "a.fa", plain))
	if len(recs) != 2 {
		t.Fatalf("want 2 records, got %d", len(recs))
	}
	if recs[0].ID != "hp1" || string(recs[0].Seq) != "GGGAAACCC" {
		t.Fatalf("bad first record %+v", recs[0])
	}
	if recs[1].ID != "hp2" || string(recs[1].Seq) != "acgu" {
		t.Fatalf("bad second record %+v", recs[1])
	}
}

func TestStreamGzip(t *testing.T) {
	recs := collect(t, writeGz(t, "a.fa.gz", plain))
	if len(recs) != 2 || recs[1].ID != "hp2" {
		t.Fatalf("gzip parse failed: %+v", recs)
	}
}

func TestStreamGzipCorruptTrailer(t *testing.T) {
	fn := writeGz(t, "a.fa.gz", plain)
	data, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	data[len(data)-8] ^= 0xff // CRC-32
	if err := os.WriteFile(fn, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err = StreamCtx(context.Background(), fn, func(Record) error { return nil })
	if !errors.Is(err, gzip.ErrChecksum) {
		t.Fatalf("want gzip.ErrChecksum, got %v", err)
	}
}

func TestGzipCloseClosesFile(t *testing.T) {
	rc, err := openReader(writeGz(t, "a.fa.gz", plain))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	gf, ok := rc.(*gzipFile)
	if !ok {
		t.Fatalf("want *gzipFile, got %T", rc)
	}
	if _, err := io.ReadAll(rc); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := gf.fh.Read(make([]byte, 1)); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("file still open after Close: %v", err)
	}
}

func TestStreamStdin(t *testing.T) {
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() { io.WriteString(w, plain); w.Close() }()

	if n := len(collect(t, "-")); n != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", n)
	}
}

func TestStreamErrors(t *testing.T) {
	cases := map[string]string{
		"data before header": "ACGU\n>x\nA\n",
		"empty header":       ">\nACGU\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			fn := writeFile(t, "bad.fa", data)
			err := StreamCtx(context.Background(), fn, func(Record) error { return nil })
			if err == nil || !strings.Contains(err.Error(), "bad.fa:1") {
				t.Fatalf("want positioned error, got %v", err)
			}
		})
	}
}

func TestStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := StreamCtx(ctx, writeFile(t, "a.fa", plain), func(Record) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	a := writeFile(t, "a.fa", plain)
	b := writeFile(t, "b.fa", ">hp2\nGGGAAACCC\n")
	if _, err := Load(context.Background(), []string{a, b}); err == nil {
		t.Fatal("expected duplicate id error")
	}
	recs, err := Load(context.Background(), []string{a})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 2 || string(recs["hp1"].Seq) != "GGGAAACCC" {
		t.Fatalf("bad load result %+v", recs)
	}
}
