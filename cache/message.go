package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeMessage(ctx context.Context, p *Pipe, m *model.Message) error {
	if err := c.storeUser(ctx, p, &m.Author); err != nil {
		return err
	}
	if m.GuildID != 0 {
		if err := c.storePartialMember(ctx, p, m.GuildID, &m.Author, m.Member); err != nil {
			return err
		}
		for i := range m.Mentions {
			mn := &m.Mentions[i]
			if err := c.storePartialMember(ctx, p, m.GuildID, &mn.User, mn.Member); err != nil {
				return err
			}
		}
	}
	if m.Thread != nil {
		if err := c.storeChannel(ctx, p, m.Thread); err != nil {
			return err
		}
	}
	if !c.cfg.Messages.Wanted {
		return nil
	}

	b, err := projection.NewMessage(m).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindMessage, Err: err}
	}
	p.Set(ctx, keyID(keyMessage, m.ID), b, c.cfg.Messages.TTL)
	p.SAdd(ctx, keyMessages, m.ID)
	// Scored by negated timestamp so an ascending range walks newest first.
	p.ZAdd(ctx, keyID(keyChannelMessages, m.ChannelID), m.ID, float64(-m.Timestamp))
	if c.cfg.Messages.TTL > 0 {
		c.storeMeta(ctx, p, keyMessageMeta, m.ID, m.ChannelID, c.cfg.Messages.TTL)
	}
	return nil
}

func (c *Cache) storeMessageUpdate(ctx context.Context, p *Pipe, ev *model.MessageUpdate) error {
	if err := c.storeUser(ctx, p, &ev.Author); err != nil {
		return err
	}
	if !c.cfg.Messages.Wanted {
		return nil
	}
	key := keyID(keyMessage, ev.ID)
	b, err := c.fetch(ctx, key)
	if err != nil || b == nil {
		return err
	}
	am, err := c.viewMessage(b)
	if err != nil {
		return err
	}
	am.SetKind(ev.Kind)
	am.SetFlags(ev.Flags)
	if ev.Timestamp != 0 {
		am.SetTimestamp(ev.Timestamp)
	}
	am.SetEditedTimestamp(ev.EditedTimestamp)
	am.SetPinned(ev.Pinned)
	p.Set(ctx, key, am.Bytes(), c.cfg.Messages.TTL)
	if c.cfg.Messages.TTL > 0 {
		c.storeMeta(ctx, p, keyMessageMeta, ev.ID, ev.ChannelID, c.cfg.Messages.TTL)
	}
	return nil
}

// reactionDelta adjusts the stored message's aggregate reaction count.
// Per-emoji removal is a no-op: the projection keeps only the total, so
// the count removed with one emoji is unknown.
func (c *Cache) reactionDelta(ctx context.Context, p *Pipe, messageID uint64, delta int32) error {
	if !c.cfg.Messages.Wanted {
		return nil
	}
	key := keyID(keyMessage, messageID)
	b, err := c.fetch(ctx, key)
	if err != nil || b == nil {
		return err
	}
	am, err := c.viewMessage(b)
	if err != nil {
		return err
	}
	if delta == 0 {
		am.SetReactionCount(0)
	} else {
		am.AddReactions(delta)
	}
	p.Set(ctx, key, am.Bytes(), c.cfg.Messages.TTL)
	return nil
}

func (c *Cache) deleteMessage(ctx context.Context, p *Pipe, channelID uint64, ids ...uint64) {
	if !c.cfg.Messages.Wanted {
		return
	}
	keys := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		keys = append(keys, keyID(keyMessage, id))
		if c.cfg.Messages.TTL > 0 {
			keys = append(keys, keyID(keyMessageMeta, id))
		}
	}
	p.Del(ctx, keys...)
	p.SRem(ctx, keyMessages, ids...)
	p.ZRem(ctx, keyID(keyChannelMessages, channelID), ids...)
}

func (c *Cache) viewMessage(b []byte) (*projection.ArchivedMessage, error) {
	if c.cfg.TrustedViews {
		return projection.ViewMessageTrusted(b), nil
	}
	am, err := projection.ViewMessage(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindMessage, Err: err}
	}
	return am, nil
}
