package cache

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/swrge/randy/projection"
)

// Getters overlay the stored bytes without copying them out of the reply
// buffer. Every getter returns (nil, nil) when the entity is not cached.

func (c *Cache) Channel(ctx context.Context, channelID uint64) (*projection.ArchivedChannel, error) {
	b, err := c.fetch(ctx, keyID(keyChannel, channelID))
	if err != nil || b == nil {
		return nil, err
	}
	return c.viewChannel(b)
}

func (c *Cache) Guild(ctx context.Context, guildID uint64) (*projection.ArchivedGuild, error) {
	b, err := c.fetch(ctx, keyID(keyGuild, guildID))
	if err != nil || b == nil {
		return nil, err
	}
	return c.viewGuild(b)
}

func (c *Cache) Member(ctx context.Context, guildID, userID uint64) (*projection.ArchivedMember, error) {
	b, err := c.fetch(ctx, keyGuildID(keyMember, guildID, userID))
	if err != nil || b == nil {
		return nil, err
	}
	return c.viewMember(b)
}

func (c *Cache) Message(ctx context.Context, messageID uint64) (*projection.ArchivedMessage, error) {
	b, err := c.fetch(ctx, keyID(keyMessage, messageID))
	if err != nil || b == nil {
		return nil, err
	}
	return c.viewMessage(b)
}

func (c *Cache) User(ctx context.Context, userID uint64) (*projection.ArchivedUser, error) {
	b, err := c.fetch(ctx, keyID(keyUser, userID))
	if err != nil || b == nil {
		return nil, err
	}
	return c.viewUser(b)
}

func (c *Cache) Role(ctx context.Context, roleID uint64) (*projection.ArchivedRole, error) {
	b, err := c.fetch(ctx, keyID(keyRole, roleID))
	if err != nil || b == nil {
		return nil, err
	}
	if c.cfg.TrustedViews {
		return projection.ViewRoleTrusted(b), nil
	}
	ar, err := projection.ViewRole(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindRole, Err: err}
	}
	return ar, nil
}

func (c *Cache) Presence(ctx context.Context, guildID, userID uint64) (*projection.ArchivedPresence, error) {
	b, err := c.fetch(ctx, keyGuildID(keyPresence, guildID, userID))
	if err != nil || b == nil {
		return nil, err
	}
	if c.cfg.TrustedViews {
		return projection.ViewPresenceTrusted(b), nil
	}
	ap, err := projection.ViewPresence(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindPresence, Err: err}
	}
	return ap, nil
}

func (c *Cache) Emoji(ctx context.Context, emojiID uint64) (*projection.ArchivedEmoji, error) {
	b, err := c.fetch(ctx, keyID(keyEmoji, emojiID))
	if err != nil || b == nil {
		return nil, err
	}
	if c.cfg.TrustedViews {
		return projection.ViewEmojiTrusted(b), nil
	}
	ae, err := projection.ViewEmoji(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindEmoji, Err: err}
	}
	return ae, nil
}

func (c *Cache) Sticker(ctx context.Context, stickerID uint64) (*projection.ArchivedSticker, error) {
	b, err := c.fetch(ctx, keyID(keySticker, stickerID))
	if err != nil || b == nil {
		return nil, err
	}
	if c.cfg.TrustedViews {
		return projection.ViewStickerTrusted(b), nil
	}
	as, err := projection.ViewSticker(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindSticker, Err: err}
	}
	return as, nil
}

func (c *Cache) Integration(ctx context.Context, guildID, integrationID uint64) (*projection.ArchivedIntegration, error) {
	b, err := c.fetch(ctx, keyGuildID(keyIntegration, guildID, integrationID))
	if err != nil || b == nil {
		return nil, err
	}
	if c.cfg.TrustedViews {
		return projection.ViewIntegrationTrusted(b), nil
	}
	ai, err := projection.ViewIntegration(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindIntegration, Err: err}
	}
	return ai, nil
}

func (c *Cache) StageInstance(ctx context.Context, stageID uint64) (*projection.ArchivedStageInstance, error) {
	b, err := c.fetch(ctx, keyID(keyStageInstance, stageID))
	if err != nil || b == nil {
		return nil, err
	}
	if c.cfg.TrustedViews {
		return projection.ViewStageInstanceTrusted(b), nil
	}
	as, err := projection.ViewStageInstance(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindStageInstance, Err: err}
	}
	return as, nil
}

func (c *Cache) ScheduledEvent(ctx context.Context, eventID uint64) (*projection.ArchivedScheduledEvent, error) {
	b, err := c.fetch(ctx, keyID(keyScheduledEvent, eventID))
	if err != nil || b == nil {
		return nil, err
	}
	return c.viewScheduledEvent(b)
}

func (c *Cache) VoiceState(ctx context.Context, guildID, userID uint64) (*projection.ArchivedVoiceState, error) {
	b, err := c.fetch(ctx, keyGuildID(keyVoiceState, guildID, userID))
	if err != nil || b == nil {
		return nil, err
	}
	if c.cfg.TrustedViews {
		return projection.ViewVoiceStateTrusted(b), nil
	}
	av, err := projection.ViewVoiceState(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindVoiceState, Err: err}
	}
	return av, nil
}

func (c *Cache) CurrentUser(ctx context.Context) (*projection.ArchivedCurrentUser, error) {
	b, err := c.fetch(ctx, keyCurrentUser)
	if err != nil || b == nil {
		return nil, err
	}
	if c.cfg.TrustedViews {
		return projection.ViewCurrentUserTrusted(b), nil
	}
	au, err := projection.ViewCurrentUser(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindCurrentUser, Err: err}
	}
	return au, nil
}

// Global id sets.

func (c *Cache) ChannelIDs(ctx context.Context) ([]uint64, error) {
	return c.memberIDs(ctx, keyChannels)
}

func (c *Cache) EmojiIDs(ctx context.Context) ([]uint64, error) {
	return c.memberIDs(ctx, keyEmojis)
}

func (c *Cache) GuildIDs(ctx context.Context) ([]uint64, error) {
	return c.memberIDs(ctx, keyGuilds)
}

func (c *Cache) MessageIDs(ctx context.Context) ([]uint64, error) {
	return c.memberIDs(ctx, keyMessages)
}

func (c *Cache) RoleIDs(ctx context.Context) ([]uint64, error) {
	return c.memberIDs(ctx, keyRoles)
}

func (c *Cache) StickerIDs(ctx context.Context) ([]uint64, error) {
	return c.memberIDs(ctx, keyStickers)
}

func (c *Cache) UserIDs(ctx context.Context) ([]uint64, error) {
	return c.memberIDs(ctx, keyUsers)
}

// UnavailableGuildIDs lists guilds the upstream has marked unavailable.
func (c *Cache) UnavailableGuildIDs(ctx context.Context) ([]uint64, error) {
	return c.memberIDs(ctx, keyUnavailable)
}

// Guild-scoped id sets.

func (c *Cache) GuildChannelIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildChannels, guildID))
}

func (c *Cache) GuildEmojiIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildEmojis, guildID))
}

func (c *Cache) GuildIntegrationIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildIntegr, guildID))
}

func (c *Cache) GuildMemberIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildMembers, guildID))
}

func (c *Cache) GuildPresenceIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildPresences, guildID))
}

func (c *Cache) GuildRoleIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildRoles, guildID))
}

func (c *Cache) GuildScheduledEventIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildEvents, guildID))
}

func (c *Cache) GuildStageInstanceIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildStages, guildID))
}

func (c *Cache) GuildStickerIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildStickers, guildID))
}

func (c *Cache) GuildVoiceStateIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyGuildVoice, guildID))
}

// CommonGuildIDs lists the guilds a user is currently seen in.
func (c *Cache) CommonGuildIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return c.memberIDs(ctx, keyID(keyUserGuilds, userID))
}

// ChannelMessageIDs lists a channel's cached message ids newest first.
// limit caps the result; 0 means all.
func (c *Cache) ChannelMessageIDs(ctx context.Context, channelID uint64, limit int64) ([]uint64, error) {
	stop := limit - 1
	if limit <= 0 {
		stop = -1
	}
	members, err := c.client.ZRange(ctx, keyID(keyChannelMessages, channelID), 0, stop).Result()
	if err != nil {
		return nil, errors.Wrap(err, "cache: reading channel message index")
	}
	return idsFromStrings(members), nil
}
