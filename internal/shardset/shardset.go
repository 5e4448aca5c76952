// Package shardset fans a query out across many independently built
// ALICE-Search indexes ("shards", one per document or text partition),
// tracking which shard IDs are currently active with a Roaring Bitmap and
// running the per-shard queries concurrently with a bounded errgroup.
package shardset

import (
	"context"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ext-sakamoro/ALICE-Search"
)

// maxConcurrentShardQueries bounds how many shard queries run at once, the
// same way a bounded errgroup protects a fan-out blob fetch from file
// descriptor exhaustion.
const maxConcurrentShardQueries = 16

// Set owns a collection of shards keyed by a small integer ID, each an
// independently built *alice.Index.
type Set struct {
	mu     sync.RWMutex
	shards map[uint32]*alice.Index
	active *roaring.Bitmap
}

// New returns an empty Set.
func New() *Set {
	return &Set{
		shards: make(map[uint32]*alice.Index),
		active: roaring.New(),
	}
}

// Add registers an Index under shardID, replacing any existing shard with
// that ID.
func (s *Set) Add(shardID uint32, ix *alice.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shards[shardID] = ix
	s.active.Add(shardID)
}

// Remove deregisters a shard.
func (s *Set) Remove(shardID uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shards, shardID)
	s.active.Remove(shardID)
}

// ShardCount returns the number of active shards.
func (s *Set) ShardCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(s.active.GetCardinality())
}

// Match pairs a shard ID with the positions a query matched inside it.
type Match struct {
	ShardID   uint32
	Positions []int
}

// Count sums Count(pattern) across every active shard, querying them
// concurrently.
func (s *Set) Count(ctx context.Context, pattern []byte) (int, error) {
	shardIDs, indexes := s.snapshot()

	var total sync.Map // shardID -> int, avoids a mutex on the hot path
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentShardQueries)

	for i, id := range shardIDs {
		id, ix := id, indexes[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			total.Store(id, ix.Count(pattern))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("shardset: count: %w", err)
	}

	sum := 0
	total.Range(func(_, v any) bool {
		sum += v.(int)
		return true
	})
	return sum, nil
}

// Locate runs Locate(pattern) against every active shard concurrently and
// returns one Match per shard that found anything.
func (s *Set) Locate(ctx context.Context, pattern []byte) ([]Match, error) {
	shardIDs, indexes := s.snapshot()

	matches := make([]Match, len(shardIDs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentShardQueries)

	for i := range shardIDs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			positions := indexes[i].LocateAll(pattern)
			matches[i] = Match{ShardID: shardIDs[i], Positions: positions}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("shardset: locate: %w", err)
	}

	out := matches[:0]
	for _, m := range matches {
		if len(m.Positions) > 0 {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Set) snapshot() ([]uint32, []*alice.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint32, 0, len(s.shards))
	indexes := make([]*alice.Index, 0, len(s.shards))
	it := s.active.Iterator()
	for it.HasNext() {
		id := it.Next()
		if ix, ok := s.shards[id]; ok {
			ids = append(ids, id)
			indexes = append(indexes, ix)
		}
	}
	return ids, indexes
}
