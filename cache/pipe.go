package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Pipe accumulates commands and sends them in one round trip. Reads queued
// on a Pipe return typed command handles whose results become available
// after Flush; writes are fire and forget.
type Pipe struct {
	p   redis.Pipeliner
	log *zap.Logger
}

func (c *Cache) newPipe() *Pipe {
	return &Pipe{p: c.client.Pipeline(), log: c.log}
}

// Len reports the number of queued commands.
func (p *Pipe) Len() int { return p.p.Len() }

func (p *Pipe) IsEmpty() bool { return p.p.Len() == 0 }

// Flush executes all queued commands. Individual key misses are not
// errors; any other per-command failure surfaces here.
func (p *Pipe) Flush(ctx context.Context) error {
	if p.IsEmpty() {
		return nil
	}
	n := p.p.Len()
	cmds, err := p.p.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrapf(err, "cache: executing pipeline of %d commands", n)
	}
	p.log.Debug("pipeline flushed", zap.Int("commands", len(cmds)))
	return nil
}

// Discard drops all queued commands without executing them.
func (p *Pipe) Discard() { p.p.Discard() }

// KV pairs a key with the bytes to store under it.
type KV struct {
	Key   string
	Value []byte
}

func (p *Pipe) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	p.p.Set(ctx, key, value, ttl)
}

// MSet stores a batch of records. MSET itself cannot carry expirations,
// so a configured TTL is applied with one EXPIRE per key in the same
// pipeline.
func (p *Pipe) MSet(ctx context.Context, pairs []KV, ttl time.Duration) {
	if len(pairs) == 0 {
		return
	}
	args := make([]any, 0, len(pairs)*2)
	for _, kv := range pairs {
		args = append(args, kv.Key, kv.Value)
	}
	p.p.MSet(ctx, args...)
	if ttl > 0 {
		for _, kv := range pairs {
			p.p.Expire(ctx, kv.Key, ttl)
		}
	}
}

func (p *Pipe) Del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	p.p.Del(ctx, keys...)
}

func (p *Pipe) SAdd(ctx context.Context, key string, ids ...uint64) {
	if len(ids) == 0 {
		return
	}
	p.p.SAdd(ctx, key, idArgs(ids)...)
}

func (p *Pipe) SRem(ctx context.Context, key string, ids ...uint64) {
	if len(ids) == 0 {
		return
	}
	p.p.SRem(ctx, key, idArgs(ids)...)
}

// Get queues a value read. The returned handle is valid after Flush.
func (p *Pipe) Get(ctx context.Context, key string) *redis.StringCmd {
	return p.p.Get(ctx, key)
}

// SMembers queues a set read. The returned handle is valid after Flush.
func (p *Pipe) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	return p.p.SMembers(ctx, key)
}

// SCard queues a set cardinality read. The returned handle is valid
// after Flush.
func (p *Pipe) SCard(ctx context.Context, key string) *redis.IntCmd {
	return p.p.SCard(ctx, key)
}

func (p *Pipe) ZAdd(ctx context.Context, key string, id uint64, score float64) {
	p.p.ZAdd(ctx, key, redis.Z{Score: score, Member: strconv.FormatUint(id, 10)})
}

func (p *Pipe) ZRem(ctx context.Context, key string, ids ...uint64) {
	if len(ids) == 0 {
		return
	}
	p.p.ZRem(ctx, key, idArgs(ids)...)
}

func idArgs(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = strconv.FormatUint(id, 10)
	}
	return args
}

func idsFromStrings(members []string) []uint64 {
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := parseID(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
