package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeStickers(ctx context.Context, p *Pipe, guildID uint64, stickers []model.Sticker) error {
	if !c.cfg.Stickers.Wanted || len(stickers) == 0 {
		return nil
	}
	pairs := make([]KV, 0, len(stickers))
	ids := make([]uint64, 0, len(stickers))
	for i := range stickers {
		s := stickers[i]
		if s.GuildID == 0 {
			s.GuildID = guildID
		}
		b, err := projection.NewSticker(&s).Marshal()
		if err != nil {
			return &SerializeError{Kind: KindSticker, Err: err}
		}
		pairs = append(pairs, KV{Key: keyID(keySticker, s.ID), Value: b})
		ids = append(ids, s.ID)
		if c.cfg.Stickers.TTL > 0 {
			c.storeMeta(ctx, p, keyStickerMeta, s.ID, guildID, c.cfg.Stickers.TTL)
		}
	}
	p.MSet(ctx, pairs, c.cfg.Stickers.TTL)
	p.SAdd(ctx, keyStickers, ids...)
	p.SAdd(ctx, keyID(keyGuildStickers, guildID), ids...)
	return nil
}

// syncGuildStickers mirrors syncGuildEmojis for sticker update events.
func (c *Cache) syncGuildStickers(ctx context.Context, p *Pipe, guildID uint64, stickers []model.Sticker) error {
	if !c.cfg.Stickers.Wanted {
		return nil
	}
	current := p.SMembers(ctx, keyID(keyGuildStickers, guildID))
	if err := p.Flush(ctx); err != nil {
		return err
	}

	keep := make(map[uint64]struct{}, len(stickers))
	for i := range stickers {
		keep[stickers[i].ID] = struct{}{}
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
			keys = append(keys, keyID(keySticker, id))
			if c.cfg.Stickers.TTL > 0 {
				keys = append(keys, keyID(keyStickerMeta, id))
			}
		}
		p.Del(ctx, keys...)
		p.SRem(ctx, keyStickers, removed...)
		p.SRem(ctx, keyID(keyGuildStickers, guildID), removed...)
	}
	return c.storeStickers(ctx, p, guildID, stickers)
}
