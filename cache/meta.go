package cache

import (
	"context"
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Several kinds are stored under keys that do not embed the id of the
// guild (or channel) that owns them. For those kinds a companion meta
// record is written alongside the value whenever a TTL is configured, so
// that the owning index sets can still be cleaned up after Redis expires
// the value and the only thing left is the key name. The record is the
// owner id as 8 little-endian bytes.
func metaRef(owner uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, owner)
	return b
}

func parseMetaRef(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, errors.Wrapf(ErrInvalidResponse, "meta record is %d bytes, want 8", len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}

// storeMeta queues the companion meta record for a key that carries the
// given TTL. The meta record deliberately outlives the value by a small
// margin so the expiration handler always finds it.
func (c *Cache) storeMeta(ctx context.Context, p *Pipe, metaPrefix string, id, owner uint64, ttl time.Duration) {
	p.Set(ctx, keyID(metaPrefix, id), metaRef(owner), ttl+metaGrace)
}

const metaGrace = time.Minute

// expiredKey identifies the entity a Redis expiration event refers to.
// Keys either embed every id they need (guild-scoped kinds) or point at
// a meta record holding the owner id.
type expiredKey struct {
	kind    EntityKind
	id      uint64
	guildID uint64 // set for guild-scoped keys only
}

// parseExpiredKey decodes a key name received from the keyspace
// notification channel. Keys that do not belong to the cache, including
// the meta records themselves, yield ok == false.
func parseExpiredKey(key string) (expiredKey, bool) {
	prefix, rest, found := strings.Cut(key, ":")
	if !found {
		return expiredKey{}, false
	}

	one := func(kind EntityKind) (expiredKey, bool) {
		id, err := strconv.ParseUint(rest, 10, 64)
		if err != nil || id == 0 {
			return expiredKey{}, false
		}
		return expiredKey{kind: kind, id: id}, true
	}
	two := func(kind EntityKind) (expiredKey, bool) {
		g, i, found := strings.Cut(rest, ":")
		if !found {
			return expiredKey{}, false
		}
		guildID, err := strconv.ParseUint(g, 10, 64)
		if err != nil || guildID == 0 {
			return expiredKey{}, false
		}
		id, err := strconv.ParseUint(i, 10, 64)
		if err != nil || id == 0 {
			return expiredKey{}, false
		}
		return expiredKey{kind: kind, id: id, guildID: guildID}, true
	}

	switch prefix {
	case keyChannel:
		return one(KindChannel)
	case keyEmoji:
		return one(KindEmoji)
	case keyGuild:
		return one(KindGuild)
	case keyMessage:
		return one(KindMessage)
	case keyRole:
		return one(KindRole)
	case keyScheduledEvent:
		return one(KindScheduledEvent)
	case keyStageInstance:
		return one(KindStageInstance)
	case keySticker:
		return one(KindSticker)
	case keyUser:
		return one(KindUser)
	case keyIntegration:
		return two(KindIntegration)
	case keyMember:
		return two(KindMember)
	case keyPresence:
		return two(KindPresence)
	case keyVoiceState:
		return two(KindVoiceState)
	default:
		return expiredKey{}, false
	}
}

// takeMetaRef consumes the meta record for the given kind with GETDEL and
// returns the owner id it holds. A missing record returns (0, nil): the
// value was deleted through the normal path, which removes index
// membership itself, before the expiration event arrived.
func (c *Cache) takeMetaRef(ctx context.Context, metaPrefix string, id uint64) (uint64, error) {
	b, err := c.client.GetDel(ctx, keyID(metaPrefix, id)).Bytes()
	if err != nil {
		if isNil(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "fetching meta record")
	}
	return parseMetaRef(b)
}
