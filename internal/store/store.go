// Package store persists merged gradient tables under a run ID so that
// separate counting runs can be inspected or continued.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"nnfold/pkg/api"
)

// VersionedRecord tags every persisted payload.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Snapshot is the gradient state of one run.
type Snapshot struct {
	VersionedRecord
	RunID      string          `json:"run_id"`
	CreatedAt  time.Time       `json:"created_at"`
	ParamsFile string          `json:"params_file,omitempty"`
	Motifs     int             `json:"motifs"`
	Gradients  api.ParamFileV1 `json:"gradients"`
}

// Store defines persistence for gradient snapshots.
type Store interface {
	Init(ctx context.Context) error
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	GetSnapshot(ctx context.Context, runID string) (Snapshot, bool, error)
	ListRuns(ctx context.Context) ([]string, error)
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string { return uuid.NewString() }

// NewSnapshot stamps a snapshot with the current versions.
func NewSnapshot(runID string, grads api.ParamFileV1) Snapshot {
	return Snapshot{
		VersionedRecord: VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           runID,
		CreatedAt:       time.Now().UTC(),
		Gradients:       grads,
	}
}
