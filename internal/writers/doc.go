// Package writers turns scored motifs into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV, JSON, JSONL).
//   - The pipeline stays orchestration-only and hands results over in order.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
