// pkg/api/scores_v1.go
package api

// MotifScoreV1 is the stable JSON/JSONL schema for one scored motif.
type MotifScoreV1 struct {
	Index      int     `json:"index"`
	SequenceID string  `json:"sequence_id"`
	Kind       string  `json:"kind"`
	Coords     []int   `json:"coords"`
	LoopKind   string  `json:"loop_kind,omitempty"` // single loops only
	Energy     float64 `json:"energy"`
	Weight     float64 `json:"weight,omitempty"` // set when gradients are counted
	SourceFile string  `json:"source_file,omitempty"`
}
