// Package revstore persists saved allocation revisions to Redis, keyed by
// the SHA-256 of the canonicalized project YAML (SPEC_FULL.md
// "SUPPLEMENTED FEATURES"). Identical projects resolve to the same stored
// revision without recomputing — an application of the allocator's own
// determinism guarantee (spec §8 property 1). This package is an external
// collaborator: it never influences what alloc.AllocateProject returns.
package revstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/newtron-network/patchplan/pkg/model"
	"github.com/newtron-network/patchplan/pkg/util"
)

// revisionKeyPrefix and lockKeyPrefix namespace patchplan's keys in a
// shared Redis instance, mirroring the teacher's "NEWTRON_LOCK|<device>"
// convention.
const (
	revisionKeyPrefix = "PATCHPLAN_REVISION"
	lockKeyPrefix     = "PATCHPLAN_LOCK"
)

// Revision is one saved allocation result, addressed by the hash of the
// project that produced it.
type Revision struct {
	ProjectHash string                 `json:"project_hash"`
	Result      model.AllocationResult `json:"result"`
	SavedAt     time.Time              `json:"saved_at"`
	SavedBy     string                 `json:"saved_by"`
}

// Store wraps a Redis client for revision persistence and the advisory
// lock taken around recompute-and-save.
type Store struct {
	client *redis.Client
	ctx    context.Context
}

// NewStore creates a revision store client against addr (host:port).
func NewStore(addr string) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ctx:    context.Background(),
	}
}

// Ping verifies connectivity, returning util.ErrRevisionStoreUnavailable on
// failure.
func (s *Store) Ping() error {
	if err := s.client.Ping(s.ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrRevisionStoreUnavailable, err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func revisionKey(hash string) string {
	return fmt.Sprintf("%s|%s", revisionKeyPrefix, hash)
}

func lockKey(hash string) string {
	return fmt.Sprintf("%s|%s", lockKeyPrefix, hash)
}

// Save persists rev under its ProjectHash, overwriting any prior revision
// stored at the same hash (the two are guaranteed structurally identical by
// the allocator's determinism property, so overwriting is always safe).
func (s *Store) Save(rev *Revision) error {
	data, err := json.Marshal(rev)
	if err != nil {
		return fmt.Errorf("revstore: marshal revision: %w", err)
	}
	if err := s.client.Set(s.ctx, revisionKey(rev.ProjectHash), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrRevisionStoreUnavailable, err)
	}
	return nil
}

// Load fetches the revision stored under hash. Returns util.ErrNotFound if
// no revision has been saved for that project hash.
func (s *Store) Load(hash string) (*Revision, error) {
	data, err := s.client.Get(s.ctx, revisionKey(hash)).Bytes()
	if err == redis.Nil {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrRevisionStoreUnavailable, err)
	}

	var rev Revision
	if err := json.Unmarshal(data, &rev); err != nil {
		return nil, fmt.Errorf("revstore: unmarshal revision: %w", err)
	}
	return &rev, nil
}

// Delete removes the revision stored under hash. Returns util.ErrNotFound
// if no revision existed there.
func (s *Store) Delete(hash string) error {
	n, err := s.client.Del(s.ctx, revisionKey(hash)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrRevisionStoreUnavailable, err)
	}
	if n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// List returns the project hash of every saved revision, using cursor-based
// SCAN rather than the blocking KEYS command.
func (s *Store) List() ([]string, error) {
	keys, err := scanKeys(s.ctx, s.client, revisionKeyPrefix+"|*", 100)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrRevisionStoreUnavailable, err)
	}

	hashes := make([]string, 0, len(keys))
	prefix := revisionKeyPrefix + "|"
	for _, k := range keys {
		hashes = append(hashes, k[len(prefix):])
	}
	return hashes, nil
}

// scanKeys iterates Redis keys matching pattern using cursor-based SCAN
// instead of the blocking O(N) KEYS command.
func scanKeys(ctx context.Context, client *redis.Client, pattern string, countHint int64) ([]string, error) {
	var cursor uint64
	var keys []string
	for {
		batch, nextCursor, err := client.Scan(ctx, cursor, pattern, countHint).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
