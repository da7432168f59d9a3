package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewkit/internal/adapters/observability"
	"reviewkit/internal/domain"
)

// Store persists the single current snapshot per business id in redis, so a
// restart keeps the latest analysis. TTL 0 keeps snapshots until the next
// regeneration overwrites them.
type Store struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Store {
	return &Store{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

// NewWithClient is used by tests running against miniredis.
func NewWithClient(c *redis.Client, ttl time.Duration) *Store {
	return &Store{c: c, ttl: ttl}
}

func key(businessID string) string { return "analysis:" + businessID }

func (s *Store) Put(ctx context.Context, snap domain.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.c.Set(ctx, key(snap.BusinessID), b, s.ttl).Err(); err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return nil
}

func (s *Store) Get(ctx context.Context, businessID string) (domain.Snapshot, error) {
	v, err := s.c.Get(ctx, key(businessID)).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return domain.Snapshot{}, domain.ErrSnapshotMiss
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	observability.ObserveCache("redis", "hit")
	var snap domain.Snapshot
	if err := json.Unmarshal(v, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}
