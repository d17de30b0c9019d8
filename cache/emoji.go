package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeEmojis(ctx context.Context, p *Pipe, guildID uint64, emojis []model.Emoji) error {
	if !c.cfg.Emojis.Wanted || len(emojis) == 0 {
		return nil
	}
	pairs := make([]KV, 0, len(emojis))
	ids := make([]uint64, 0, len(emojis))
	for i := range emojis {
		e := &emojis[i]
		b, err := projection.NewEmoji(e).Marshal()
		if err != nil {
			return &SerializeError{Kind: KindEmoji, Err: err}
		}
		pairs = append(pairs, KV{Key: keyID(keyEmoji, e.ID), Value: b})
		ids = append(ids, e.ID)
		if c.cfg.Emojis.TTL > 0 {
			c.storeMeta(ctx, p, keyEmojiMeta, e.ID, guildID, c.cfg.Emojis.TTL)
		}
	}
	p.MSet(ctx, pairs, c.cfg.Emojis.TTL)
	p.SAdd(ctx, keyEmojis, ids...)
	p.SAdd(ctx, keyID(keyGuildEmojis, guildID), ids...)
	return nil
}

// syncGuildEmojis replaces the guild's emoji set with the payload: emoji
// update events carry the full list, so anything cached but absent from it
// was deleted upstream. The current set must be read before the new one is
// written, which costs a flush in between.
func (c *Cache) syncGuildEmojis(ctx context.Context, p *Pipe, guildID uint64, emojis []model.Emoji) error {
	if !c.cfg.Emojis.Wanted {
		return nil
	}
	current := p.SMembers(ctx, keyID(keyGuildEmojis, guildID))
	if err := p.Flush(ctx); err != nil {
		return err
	}

	keep := make(map[uint64]struct{}, len(emojis))
	for i := range emojis {
		keep[emojis[i].ID] = struct{}{}
	}
	var removed []uint64
	for _, id := range idsFromStrings(current.Val()) {
		if _, ok := keep[id]; !ok {
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		keys := make([]string, 0, len(removed)*2)
		for _, id := range removed {
			keys = append(keys, keyID(keyEmoji, id))
			if c.cfg.Emojis.TTL > 0 {
				keys = append(keys, keyID(keyEmojiMeta, id))
			}
		}
		p.Del(ctx, keys...)
		p.SRem(ctx, keyEmojis, removed...)
		p.SRem(ctx, keyID(keyGuildEmojis, guildID), removed...)
	}
	return c.storeEmojis(ctx, p, guildID, emojis)
}
