package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeChannel(ctx context.Context, p *Pipe, ch *model.Channel) error {
	if err := c.storeUsers(ctx, p, ch.Recipients); err != nil {
		return err
	}
	if !c.cfg.Channels.Wanted {
		return nil
	}

	b, err := projection.NewChannel(ch).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindChannel, Err: err}
	}
	p.Set(ctx, keyID(keyChannel, ch.ID), b, c.cfg.Channels.TTL)
	p.SAdd(ctx, keyChannels, ch.ID)
	if ch.GuildID != 0 {
		p.SAdd(ctx, keyID(keyGuildChannels, ch.GuildID), ch.ID)
	}
	if c.cfg.Channels.TTL > 0 {
		c.storeMeta(ctx, p, keyChannelMeta, ch.ID, ch.GuildID, c.cfg.Channels.TTL)
	}
	return nil
}

func (c *Cache) storeChannels(ctx context.Context, p *Pipe, guildID uint64, channels []model.Channel) error {
	if len(channels) == 0 {
		return nil
	}

	var users []model.User
	for i := range channels {
		users = append(users, channels[i].Recipients...)
	}
	if err := c.storeUsers(ctx, p, users); err != nil {
		return err
	}
	if !c.cfg.Channels.Wanted {
		return nil
	}

	pairs := make([]KV, 0, len(channels))
	ids := make([]uint64, 0, len(channels))
	for i := range channels {
		ch := &channels[i]
		if ch.GuildID == 0 {
			ch.GuildID = guildID
		}
		b, err := projection.NewChannel(ch).Marshal()
		if err != nil {
			return &SerializeError{Kind: KindChannel, Err: err}
		}
		pairs = append(pairs, KV{Key: keyID(keyChannel, ch.ID), Value: b})
		ids = append(ids, ch.ID)
		if c.cfg.Channels.TTL > 0 {
			c.storeMeta(ctx, p, keyChannelMeta, ch.ID, ch.GuildID, c.cfg.Channels.TTL)
		}
	}
	p.MSet(ctx, pairs, c.cfg.Channels.TTL)
	p.SAdd(ctx, keyChannels, ids...)
	if guildID != 0 {
		p.SAdd(ctx, keyID(keyGuildChannels, guildID), ids...)
	}
	return nil
}

// storePinsUpdate patches the stored channel's pin timestamp in place.
// A channel that is not cached stays uncached.
func (c *Cache) storePinsUpdate(ctx context.Context, p *Pipe, ev *model.ChannelPinsUpdate) error {
	if !c.cfg.Channels.Wanted {
		return nil
	}
	b, err := c.fetch(ctx, keyID(keyChannel, ev.ChannelID))
	if err != nil || b == nil {
		return err
	}
	ac, err := c.viewChannel(b)
	if err != nil {
		return err
	}
	ac.SetLastPinTimestamp(ev.LastPinTimestamp)
	p.Set(ctx, keyID(keyChannel, ev.ChannelID), ac.Bytes(), c.cfg.Channels.TTL)
	if c.cfg.Channels.TTL > 0 {
		c.storeMeta(ctx, p, keyChannelMeta, ev.ChannelID, ac.GuildID(), c.cfg.Channels.TTL)
	}
	return nil
}

func (c *Cache) deleteChannel(ctx context.Context, p *Pipe, guildID, channelID uint64) {
	if !c.cfg.Channels.Wanted {
		return
	}
	p.Del(ctx, keyID(keyChannel, channelID))
	p.SRem(ctx, keyChannels, channelID)
	if guildID != 0 {
		p.SRem(ctx, keyID(keyGuildChannels, guildID), channelID)
	}
	if c.cfg.Channels.TTL > 0 {
		p.Del(ctx, keyID(keyChannelMeta, channelID))
	}
}

func (c *Cache) viewChannel(b []byte) (*projection.ArchivedChannel, error) {
	if c.cfg.TrustedViews {
		return projection.ViewChannelTrusted(b), nil
	}
	ac, err := projection.ViewChannel(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindChannel, Err: err}
	}
	return ac, nil
}
