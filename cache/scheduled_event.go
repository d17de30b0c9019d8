package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeScheduledEvent(ctx context.Context, p *Pipe, ev *model.ScheduledEvent) error {
	if !c.cfg.ScheduledEvents.Wanted {
		return nil
	}
	b, err := projection.NewScheduledEvent(ev).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindScheduledEvent, Err: err}
	}
	p.Set(ctx, keyID(keyScheduledEvent, ev.ID), b, c.cfg.ScheduledEvents.TTL)
	p.SAdd(ctx, keyID(keyGuildEvents, ev.GuildID), ev.ID)
	if c.cfg.ScheduledEvents.TTL > 0 {
		c.storeMeta(ctx, p, keyScheduledMeta, ev.ID, ev.GuildID, c.cfg.ScheduledEvents.TTL)
	}
	return nil
}

func (c *Cache) storeScheduledEvents(ctx context.Context, p *Pipe, guildID uint64, events []model.ScheduledEvent) error {
	for i := range events {
		ev := events[i]
		if ev.GuildID == 0 {
			ev.GuildID = guildID
		}
		if err := c.storeScheduledEvent(ctx, p, &ev); err != nil {
			return err
		}
	}
	return nil
}

// scheduledEventUsers patches the stored event's subscriber count in place.
func (c *Cache) scheduledEventUsers(ctx context.Context, p *Pipe, eventID uint64, delta int32) error {
	if !c.cfg.ScheduledEvents.Wanted {
		return nil
	}
	key := keyID(keyScheduledEvent, eventID)
	b, err := c.fetch(ctx, key)
	if err != nil || b == nil {
		return err
	}
	ae, err := c.viewScheduledEvent(b)
	if err != nil {
		return err
	}
	ae.AddUsers(delta)
	p.Set(ctx, key, ae.Bytes(), c.cfg.ScheduledEvents.TTL)
	return nil
}

func (c *Cache) deleteScheduledEvent(ctx context.Context, p *Pipe, guildID, id uint64) {
	if !c.cfg.ScheduledEvents.Wanted {
		return
	}
	p.Del(ctx, keyID(keyScheduledEvent, id))
	p.SRem(ctx, keyID(keyGuildEvents, guildID), id)
	if c.cfg.ScheduledEvents.TTL > 0 {
		p.Del(ctx, keyID(keyScheduledMeta, id))
	}
}

func (c *Cache) viewScheduledEvent(b []byte) (*projection.ArchivedScheduledEvent, error) {
	if c.cfg.TrustedViews {
		return projection.ViewScheduledEventTrusted(b), nil
	}
	ae, err := projection.ViewScheduledEvent(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindScheduledEvent, Err: err}
	}
	return ae, nil
}
