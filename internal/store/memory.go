package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	snapshots   map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.snapshots = make(map[string][]byte)
	return nil
}

// SaveSnapshot stores the encoded form so callers cannot alias stored tables.
func (s *MemoryStore) SaveSnapshot(_ context.Context, snap Snapshot) error {
	payload, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	s.snapshots[snap.RunID] = payload
	return nil
}

func (s *MemoryStore) GetSnapshot(_ context.Context, runID string) (Snapshot, bool, error) {
	s.mu.RLock()
	payload, ok := s.snapshots[runID]
	s.mu.RUnlock()

	if !ok {
		return Snapshot{}, false, nil
	}
	snap, err := DecodeSnapshot(payload)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
