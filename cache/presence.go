package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storePresence(ctx context.Context, p *Pipe, pr *model.Presence) error {
	if !c.cfg.Presences.Wanted {
		return nil
	}
	b, err := projection.NewPresence(pr).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindPresence, Err: err}
	}
	p.Set(ctx, keyGuildID(keyPresence, pr.GuildID, pr.UserID), b, c.cfg.Presences.TTL)
	p.SAdd(ctx, keyID(keyGuildPresences, pr.GuildID), pr.UserID)
	return nil
}

func (c *Cache) storePresences(ctx context.Context, p *Pipe, guildID uint64, presences []model.Presence) error {
	if !c.cfg.Presences.Wanted || len(presences) == 0 {
		return nil
	}
	pairs := make([]KV, 0, len(presences))
	ids := make([]uint64, 0, len(presences))
	for i := range presences {
		pr := presences[i]
		if pr.GuildID == 0 {
			pr.GuildID = guildID
		}
		b, err := projection.NewPresence(&pr).Marshal()
		if err != nil {
			return &SerializeError{Kind: KindPresence, Err: err}
		}
		pairs = append(pairs, KV{Key: keyGuildID(keyPresence, pr.GuildID, pr.UserID), Value: b})
		ids = append(ids, pr.UserID)
	}
	p.MSet(ctx, pairs, c.cfg.Presences.TTL)
	p.SAdd(ctx, keyID(keyGuildPresences, guildID), ids...)
	return nil
}
