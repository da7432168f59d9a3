package memory

import (
	"context"
	"sync"

	"reviewkit/internal/adapters/observability"
	"reviewkit/internal/domain"
)

// Store is the in-process SnapshotStore: a mutex-guarded map with overwrite
// semantics, one snapshot per business id. Snapshots are deep-copied on the
// way in and out so callers can't mutate the cached value.
type Store struct {
	mu    sync.RWMutex
	snaps map[string]domain.Snapshot
}

func New() *Store {
	return &Store{snaps: map[string]domain.Snapshot{}}
}

func (s *Store) Put(ctx context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.BusinessID] = copySnapshot(snap)
	observability.ObserveCache("memory", "set")
	return nil
}

func (s *Store) Get(ctx context.Context, businessID string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[businessID]
	if !ok {
		observability.ObserveCache("memory", "miss")
		return domain.Snapshot{}, domain.ErrSnapshotMiss
	}
	observability.ObserveCache("memory", "hit")
	return copySnapshot(snap), nil
}

func copySnapshot(in domain.Snapshot) domain.Snapshot {
	out := in
	out.Topics = make([]domain.TopicResult, len(in.Topics))
	for i, t := range in.Topics {
		ct := t
		ct.Keywords = append([]string(nil), t.Keywords...)
		ct.Reviews = append([]domain.TopicReview(nil), t.Reviews...)
		out.Topics[i] = ct
	}
	return out
}
