package cache

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// HandleExpired repairs the indexes after Redis expired a value key. The
// record itself is already gone; what remains is its membership in the
// global and guild-scoped id sets, located through the key name and, for
// kinds whose keys carry no owner id, the companion meta record.
//
// Keys that do not belong to the cache are ignored.
func (c *Cache) HandleExpired(ctx context.Context, key string) error {
	ek, ok := parseExpiredKey(key)
	if !ok {
		return nil
	}
	if err := c.handleExpired(ctx, ek); err != nil {
		return &ExpireError{Key: key, Err: err}
	}
	return nil
}

func (c *Cache) handleExpired(ctx context.Context, ek expiredKey) error {
	p := c.newPipe()
	switch ek.kind {
	case KindChannel:
		guildID, err := c.takeMetaRef(ctx, keyChannelMeta, ek.id)
		if err != nil {
			return &MetaError{Kind: KindChannel, Err: err}
		}
		p.SRem(ctx, keyChannels, ek.id)
		if guildID != 0 {
			p.SRem(ctx, keyID(keyGuildChannels, guildID), ek.id)
		}

	case KindEmoji:
		guildID, err := c.takeMetaRef(ctx, keyEmojiMeta, ek.id)
		if err != nil {
			return &MetaError{Kind: KindEmoji, Err: err}
		}
		p.SRem(ctx, keyEmojis, ek.id)
		if guildID != 0 {
			p.SRem(ctx, keyID(keyGuildEmojis, guildID), ek.id)
		}

	case KindGuild:
		// The guild record expired but everything scoped under it is
		// still cached; run the full cascade.
		return c.deleteGuild(ctx, p, ek.id)

	case KindMessage:
		channelID, err := c.takeMetaRef(ctx, keyMessageMeta, ek.id)
		if err != nil {
			return &MetaError{Kind: KindMessage, Err: err}
		}
		p.SRem(ctx, keyMessages, ek.id)
		if channelID != 0 {
			p.ZRem(ctx, keyID(keyChannelMessages, channelID), ek.id)
		}

	case KindRole:
		guildID, err := c.takeMetaRef(ctx, keyRoleMeta, ek.id)
		if err != nil {
			return &MetaError{Kind: KindRole, Err: err}
		}
		p.SRem(ctx, keyRoles, ek.id)
		if guildID != 0 {
			p.SRem(ctx, keyID(keyGuildRoles, guildID), ek.id)
		}

	case KindScheduledEvent:
		guildID, err := c.takeMetaRef(ctx, keyScheduledMeta, ek.id)
		if err != nil {
			return &MetaError{Kind: KindScheduledEvent, Err: err}
		}
		if guildID != 0 {
			p.SRem(ctx, keyID(keyGuildEvents, guildID), ek.id)
		}

	case KindStageInstance:
		guildID, err := c.takeMetaRef(ctx, keyStageMeta, ek.id)
		if err != nil {
			return &MetaError{Kind: KindStageInstance, Err: err}
		}
		if guildID != 0 {
			p.SRem(ctx, keyID(keyGuildStages, guildID), ek.id)
		}

	case KindSticker:
		guildID, err := c.takeMetaRef(ctx, keyStickerMeta, ek.id)
		if err != nil {
			return &MetaError{Kind: KindSticker, Err: err}
		}
		p.SRem(ctx, keyStickers, ek.id)
		if guildID != 0 {
			p.SRem(ctx, keyID(keyGuildStickers, guildID), ek.id)
		}

	case KindUser:
		p.SRem(ctx, keyUsers, ek.id)
		p.Del(ctx, keyID(keyUserGuilds, ek.id))

	case KindMember:
		p.SRem(ctx, keyID(keyGuildMembers, ek.guildID), ek.id)
		if c.cfg.Users.Wanted {
			// The member's user may have been cached only for this guild.
			if err := c.deleteUser(ctx, p, ek.id, ek.guildID); err != nil {
				return err
			}
		}

	case KindIntegration:
		p.SRem(ctx, keyID(keyGuildIntegr, ek.guildID), ek.id)

	case KindPresence:
		p.SRem(ctx, keyID(keyGuildPresences, ek.guildID), ek.id)

	case KindVoiceState:
		p.SRem(ctx, keyID(keyGuildVoice, ek.guildID), ek.id)
	}
	return p.Flush(ctx)
}

// ListenExpired subscribes to the keyspace notification channel for the
// given logical database and repairs indexes as expiration events arrive.
// The server must have `notify-keyspace-events` configured to emit
// expired events (the "Ex" flags). Blocks until ctx is done or the
// subscription fails.
func (c *Cache) ListenExpired(ctx context.Context, db int) error {
	channel := fmt.Sprintf("__keyevent@%d__:expired", db)
	sub := c.client.Subscribe(ctx, channel)
	defer sub.Close()

	// Fail fast on a refused subscription.
	if _, err := sub.Receive(ctx); err != nil {
		return errors.Wrapf(err, "cache: subscribing to %s", channel)
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return errors.Newf("cache: subscription to %s closed", channel)
			}
			if err := c.HandleExpired(ctx, msg.Payload); err != nil {
				c.log.Warn("expiration cleanup failed",
					zap.String("key", msg.Payload),
					zap.Error(err))
			}
		}
	}
}
