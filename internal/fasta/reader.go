// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry. Seq keeps the raw letters; encoding to the
// scoring alphabet happens downstream.
type Record struct {
	ID  string
	Seq []byte
}

// StreamCtx scans path ("-" for stdin, ".gz" transparently inflated) and calls
// emit once per record. Cancellation is checked between lines.
func StreamCtx(ctx context.Context, path string, emit func(Record) error) (err error) {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%s: %w", path, cerr)
		}
	}()

	sc := bufio.NewScanner(rc)
	const maxLine = 64 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id  string
		seq []byte
	)
	flush := func() error {
		if id == "" {
			return nil
		}
		return emit(Record{ID: id, Seq: bytes.Clone(seq)})
	}

	ln := 0
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ln++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			fields := strings.Fields(string(line[1:]))
			if len(fields) == 0 {
				return fmt.Errorf("%s:%d: empty FASTA header", path, ln)
			}
			id = fields[0]
			seq = seq[:0]
			continue
		}
		if id == "" {
			return fmt.Errorf("%s:%d: sequence data before first header", path, ln)
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return flush()
}

// Load reads every record of every path, keyed by ID. A repeated ID is an
// error because motif lines address sequences by name.
func Load(ctx context.Context, paths []string) (map[string]Record, error) {
	recs := make(map[string]Record)
	for _, p := range paths {
		err := StreamCtx(ctx, p, func(r Record) error {
			if _, dup := recs[r.ID]; dup {
				return fmt.Errorf("%s: duplicate sequence id %q", p, r.ID)
			}
			recs[r.ID] = r
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return recs, nil
}

/* ---------------- small helpers ---------------- */

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return &gzipFile{Reader: gr, fh: fh}, nil
	}
	return fh, nil
}

// gzipFile closes the inflater before the file beneath it.
type gzipFile struct {
	*gzip.Reader
	fh *os.File
}

func (g *gzipFile) Close() error {
	gerr := g.Reader.Close()
	ferr := g.fh.Close()
	if gerr != nil {
		return gerr
	}
	return ferr
}
