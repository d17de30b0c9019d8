package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeRole(ctx context.Context, p *Pipe, guildID uint64, r *model.Role) error {
	if !c.cfg.Roles.Wanted {
		return nil
	}
	b, err := projection.NewRole(guildID, r).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindRole, Err: err}
	}
	p.Set(ctx, keyID(keyRole, r.ID), b, c.cfg.Roles.TTL)
	p.SAdd(ctx, keyRoles, r.ID)
	p.SAdd(ctx, keyID(keyGuildRoles, guildID), r.ID)
	if c.cfg.Roles.TTL > 0 {
		c.storeMeta(ctx, p, keyRoleMeta, r.ID, guildID, c.cfg.Roles.TTL)
	}
	return nil
}

func (c *Cache) storeRoles(ctx context.Context, p *Pipe, guildID uint64, roles []model.Role) error {
	if !c.cfg.Roles.Wanted || len(roles) == 0 {
		return nil
	}
	pairs := make([]KV, 0, len(roles))
	ids := make([]uint64, 0, len(roles))
	for i := range roles {
		r := &roles[i]
		b, err := projection.NewRole(guildID, r).Marshal()
		if err != nil {
			return &SerializeError{Kind: KindRole, Err: err}
		}
		pairs = append(pairs, KV{Key: keyID(keyRole, r.ID), Value: b})
		ids = append(ids, r.ID)
		if c.cfg.Roles.TTL > 0 {
			c.storeMeta(ctx, p, keyRoleMeta, r.ID, guildID, c.cfg.Roles.TTL)
		}
	}
	p.MSet(ctx, pairs, c.cfg.Roles.TTL)
	p.SAdd(ctx, keyRoles, ids...)
	p.SAdd(ctx, keyID(keyGuildRoles, guildID), ids...)
	return nil
}

func (c *Cache) deleteRole(ctx context.Context, p *Pipe, guildID, roleID uint64) {
	if !c.cfg.Roles.Wanted {
		return
	}
	p.Del(ctx, keyID(keyRole, roleID))
	p.SRem(ctx, keyRoles, roleID)
	p.SRem(ctx, keyID(keyGuildRoles, guildID), roleID)
	if c.cfg.Roles.TTL > 0 {
		p.Del(ctx, keyID(keyRoleMeta, roleID))
	}
}
