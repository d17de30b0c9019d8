package cache

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Stats exposes collection cardinalities without touching any records.
type Stats struct {
	c *Cache
}

func (c *Cache) Stats() Stats { return Stats{c: c} }

func (s Stats) card(ctx context.Context, key string) (int64, error) {
	n, err := s.c.client.SCard(ctx, key).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "cache: scard %s", key)
	}
	return n, nil
}

func (s Stats) Channels(ctx context.Context) (int64, error) { return s.card(ctx, keyChannels) }
func (s Stats) Emojis(ctx context.Context) (int64, error)   { return s.card(ctx, keyEmojis) }
func (s Stats) Guilds(ctx context.Context) (int64, error)   { return s.card(ctx, keyGuilds) }
func (s Stats) Messages(ctx context.Context) (int64, error) { return s.card(ctx, keyMessages) }
func (s Stats) Roles(ctx context.Context) (int64, error)    { return s.card(ctx, keyRoles) }
func (s Stats) Stickers(ctx context.Context) (int64, error) { return s.card(ctx, keyStickers) }
func (s Stats) Users(ctx context.Context) (int64, error)    { return s.card(ctx, keyUsers) }

func (s Stats) UnavailableGuilds(ctx context.Context) (int64, error) {
	return s.card(ctx, keyUnavailable)
}

func (s Stats) GuildChannels(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildChannels, guildID))
}

func (s Stats) GuildEmojis(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildEmojis, guildID))
}

func (s Stats) GuildIntegrations(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildIntegr, guildID))
}

func (s Stats) GuildMembers(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildMembers, guildID))
}

func (s Stats) GuildPresences(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildPresences, guildID))
}

func (s Stats) GuildRoles(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildRoles, guildID))
}

func (s Stats) GuildScheduledEvents(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildEvents, guildID))
}

func (s Stats) GuildStageInstances(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildStages, guildID))
}

func (s Stats) GuildStickers(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildStickers, guildID))
}

func (s Stats) GuildVoiceStates(ctx context.Context, guildID uint64) (int64, error) {
	return s.card(ctx, keyID(keyGuildVoice, guildID))
}

// ChannelMessages counts the cached messages indexed for a channel.
func (s Stats) ChannelMessages(ctx context.Context, channelID uint64) (int64, error) {
	n, err := s.c.client.ZCard(ctx, keyID(keyChannelMessages, channelID)).Result()
	if err != nil {
		return 0, errors.Wrap(err, "cache: zcard channel message index")
	}
	return n, nil
}
