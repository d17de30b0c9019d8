package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeIntegration(ctx context.Context, p *Pipe, in *model.Integration) error {
	if !c.cfg.Integrations.Wanted {
		return nil
	}
	b, err := projection.NewIntegration(in).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindIntegration, Err: err}
	}
	p.Set(ctx, keyGuildID(keyIntegration, in.GuildID, in.ID), b, c.cfg.Integrations.TTL)
	p.SAdd(ctx, keyID(keyGuildIntegr, in.GuildID), in.ID)
	return nil
}

func (c *Cache) deleteIntegration(ctx context.Context, p *Pipe, guildID, id uint64) {
	if !c.cfg.Integrations.Wanted {
		return
	}
	p.Del(ctx, keyGuildID(keyIntegration, guildID, id))
	p.SRem(ctx, keyID(keyGuildIntegr, guildID), id)
}
