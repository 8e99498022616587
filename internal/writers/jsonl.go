// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"nnfold/internal/jsonlutil"
	"nnfold/pkg/api"
)

func init() {
	Register("json", StartJSONWriter)
	Register("jsonl", StartJSONLWriter)
}

func wire(weights bool) func(api.MotifScoreV1) api.MotifScoreV1 {
	return func(v api.MotifScoreV1) api.MotifScoreV1 {
		if !weights {
			v.Weight = 0
		}
		return v
	}
}

// StartJSONLWriter streams each score as one JSON line (v1).
func StartJSONLWriter(out io.Writer, opt Options, bufSize int) (chan<- api.MotifScoreV1, <-chan error) {
	conv := wire(opt.Weights)
	return jsonlutil.Start[api.MotifScoreV1](out, bufSize,
		func(enc *json.Encoder, v api.MotifScoreV1) error {
			return enc.Encode(conv(v))
		},
		IsBrokenPipe,
	)
}

// StartJSONWriter writes one indented JSON array of scores (v1).
func StartJSONWriter(out io.Writer, opt Options, bufSize int) (chan<- api.MotifScoreV1, <-chan error) {
	conv := wire(opt.Weights)
	return jsonlutil.StartArray[api.MotifScoreV1](out, bufSize,
		func(v api.MotifScoreV1) any { return conv(v) },
		IsBrokenPipe,
	)
}
