package writers

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"nnfold/pkg/api"
)

const TextHeader = "# index\tsequence_id\tkind\tcoords\tloop_kind\tenergy"

func init() { Register("text", StartTextWriter) }

// FormatRow renders one TSV line without the trailing newline.
func FormatRow(v api.MotifScoreV1, weights bool) string {
	coords := make([]string, len(v.Coords))
	for i, c := range v.Coords {
		coords[i] = strconv.Itoa(c)
	}
	loop := v.LoopKind
	if loop == "" {
		loop = "-"
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(v.Index))
	b.WriteByte('\t')
	b.WriteString(v.SequenceID)
	b.WriteByte('\t')
	b.WriteString(v.Kind)
	b.WriteByte('\t')
	b.WriteString(strings.Join(coords, ","))
	b.WriteByte('\t')
	b.WriteString(loop)
	b.WriteByte('\t')
	b.WriteString(strconv.FormatFloat(v.Energy, 'f', 4, 64))
	if weights {
		b.WriteByte('\t')
		b.WriteString(strconv.FormatFloat(v.Weight, 'g', -1, 64))
	}
	return b.String()
}

// StartTextWriter streams TSV rows.
func StartTextWriter(out io.Writer, opt Options, bufSize int) (chan<- api.MotifScoreV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.MotifScoreV1, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bufio.NewWriter(out)
		var err error
		if opt.Header {
			h := TextHeader
			if opt.Weights {
				h += "\tweight"
			}
			_, err = bw.WriteString(h + "\n")
		}
		for v := range in {
			if err != nil {
				continue
			}
			_, err = bw.WriteString(FormatRow(v, opt.Weights) + "\n")
		}
		if err == nil {
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
