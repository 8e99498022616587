// Package pipeline scores a list of motifs on a worker pool and, when asked,
// accumulates their gradients into per-worker buffers that are merged after
// the workers finish. Results reach the visit callback in input order.
//
// The only contract to implement is Kernel. This keeps the pipeline
// swappable and testable.
package pipeline
