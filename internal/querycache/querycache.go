// Package querycache fronts ALICE-Search's Locate results with a Redis
// cache keyed by an FNV-1a hash of the query pattern, and deduplicates
// concurrent identical queries with golang.org/x/sync/singleflight so a
// cache-cold burst of the same pattern hits the index exactly once.
package querycache

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// fnvOffsetBasis and fnvPrime are the 64-bit FNV-1a constants used to key
// cache entries; the exact constants matter only insofar as they must be
// applied consistently, but are kept at their canonical values.
const (
	fnvOffsetBasis uint64 = 0xcbf29ce484222325
	fnvPrime       uint64 = 0x100000001b3
)

// hashPattern computes the FNV-1a hash of a query pattern.
func hashPattern(pattern []byte) uint64 {
	h := fnvOffsetBasis
	for _, b := range pattern {
		h ^= uint64(b)
		h *= fnvPrime
	}
	return h
}

// CachedResult is the cached payload for a single query pattern.
type CachedResult struct {
	Positions []int `json:"positions"`
	Count     int   `json:"count"`
}

// Cache wraps a Redis client with FNV-1a keyed get/put and hit-rate
// tracking for ALICE-Search query results.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	group  singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// New constructs a Cache against the given Redis address, verifying the
// connection with a PING.
func New(addr, password string, db int, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("querycache: redis ping failed: %w", err)
	}
	return &Cache{rdb: rdb, ttl: ttl, prefix: "alice:q:"}, nil
}

func (c *Cache) key(pattern []byte) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], hashPattern(pattern))
	return c.prefix + fmt.Sprintf("%x", buf)
}

// Get returns the cached result for pattern, if present.
func (c *Cache) Get(ctx context.Context, pattern []byte) (CachedResult, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(pattern)).Bytes()
	if err == redis.Nil {
		c.misses.Add(1)
		return CachedResult{}, false, nil
	}
	if err != nil {
		return CachedResult{}, false, fmt.Errorf("querycache: get: %w", err)
	}

	var res CachedResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return CachedResult{}, false, fmt.Errorf("querycache: decode: %w", err)
	}
	c.hits.Add(1)
	return res, true, nil
}

// Put stores result for pattern under the cache's configured TTL.
func (c *Cache) Put(ctx context.Context, pattern []byte, result CachedResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("querycache: encode: %w", err)
	}
	return c.rdb.Set(ctx, c.key(pattern), raw, c.ttl).Err()
}

// GetOrCompute returns the cached result for pattern, computing it via fn
// on a miss. Concurrent calls for the same pattern share a single
// computation through singleflight.
func (c *Cache) GetOrCompute(ctx context.Context, pattern []byte, fn func() (CachedResult, error)) (CachedResult, error) {
	if res, ok, err := c.Get(ctx, pattern); err != nil {
		return CachedResult{}, err
	} else if ok {
		return res, nil
	}

	key := c.key(pattern)
	v, err, _ := c.group.Do(key, func() (any, error) {
		res, err := fn()
		if err != nil {
			return CachedResult{}, err
		}
		if putErr := c.Put(ctx, pattern, res); putErr != nil {
			return res, putErr
		}
		return res, nil
	})
	if err != nil {
		return CachedResult{}, err
	}
	return v.(CachedResult), nil
}

// HitRate returns the fraction of Get calls that were cache hits so far.
func (c *Cache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Close closes the underlying Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
