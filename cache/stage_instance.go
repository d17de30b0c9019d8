package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeStageInstance(ctx context.Context, p *Pipe, s *model.StageInstance) error {
	if !c.cfg.StageInstances.Wanted {
		return nil
	}
	b, err := projection.NewStageInstance(s).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindStageInstance, Err: err}
	}
	p.Set(ctx, keyID(keyStageInstance, s.ID), b, c.cfg.StageInstances.TTL)
	p.SAdd(ctx, keyID(keyGuildStages, s.GuildID), s.ID)
	if c.cfg.StageInstances.TTL > 0 {
		c.storeMeta(ctx, p, keyStageMeta, s.ID, s.GuildID, c.cfg.StageInstances.TTL)
	}
	return nil
}

func (c *Cache) storeStageInstances(ctx context.Context, p *Pipe, guildID uint64, stages []model.StageInstance) error {
	for i := range stages {
		s := stages[i]
		if s.GuildID == 0 {
			s.GuildID = guildID
		}
		if err := c.storeStageInstance(ctx, p, &s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) deleteStageInstance(ctx context.Context, p *Pipe, guildID, id uint64) {
	if !c.cfg.StageInstances.Wanted {
		return
	}
	p.Del(ctx, keyID(keyStageInstance, id))
	p.SRem(ctx, keyID(keyGuildStages, guildID), id)
	if c.cfg.StageInstances.TTL > 0 {
		p.Del(ctx, keyID(keyStageMeta, id))
	}
}
