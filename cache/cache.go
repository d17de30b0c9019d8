package cache

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a write-through Redis cache over a gateway event stream. Events
// dispatched through Update keep a multi-index view of current state in the
// backing store: one archived record per entity under its primary key,
// membership sets per kind (global and guild-scoped), and a per-channel
// message index ordered by recency.
//
// Reads overlay the raw stored bytes without decoding. Writes accumulate in
// a pipeline and flush in a single round trip per event.
//
// The cache is safe for concurrent use; correctness of concurrent writers
// rests on the store's per-key and per-pipeline atomicity, not on in-process
// locking. Events for a single entity are expected to arrive in order on one
// stream; across streams no write ordering is guaranteed.
type Cache struct {
	client redis.UniversalClient
	cfg    Config
	log    *zap.Logger
}

// New builds a Cache on top of an established client. The caller owns the
// client's lifecycle.
func New(client redis.UniversalClient, cfg Config) *Cache {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{client: client, cfg: cfg, log: log}
}

// fetch reads a primary record's raw bytes. A missing key yields (nil, nil):
// the cache is best effort over externally authoritative state, so absence
// is not an error.
func (c *Cache) fetch(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cache: get %s", key)
	}
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}

func isNil(err error) bool { return errors.Is(err, redis.Nil) }

// memberIDs reads a membership set.
func (c *Cache) memberIDs(ctx context.Context, key string) ([]uint64, error) {
	members, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "cache: smembers %s", key)
	}
	return idsFromStrings(members), nil
}
