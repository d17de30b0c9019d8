package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeGuild(ctx context.Context, p *Pipe, g *model.Guild) error {
	if g.Unavailable {
		p.SAdd(ctx, keyUnavailable, g.ID)
		return nil
	}
	p.SRem(ctx, keyUnavailable, g.ID)

	if err := c.storeChannels(ctx, p, g.ID, g.Channels); err != nil {
		return err
	}
	if err := c.storeChannels(ctx, p, g.ID, g.Threads); err != nil {
		return err
	}
	if err := c.storeMembers(ctx, p, g.ID, g.Members); err != nil {
		return err
	}
	if err := c.storeRoles(ctx, p, g.ID, g.Roles); err != nil {
		return err
	}
	if err := c.storeEmojis(ctx, p, g.ID, g.Emojis); err != nil {
		return err
	}
	if err := c.storeStickers(ctx, p, g.ID, g.Stickers); err != nil {
		return err
	}
	if err := c.storePresences(ctx, p, g.ID, g.Presences); err != nil {
		return err
	}
	if err := c.storeVoiceStates(ctx, p, g.ID, g.VoiceStates); err != nil {
		return err
	}
	if err := c.storeStageInstances(ctx, p, g.ID, g.StageInstances); err != nil {
		return err
	}
	if err := c.storeScheduledEvents(ctx, p, g.ID, g.ScheduledEvents); err != nil {
		return err
	}

	if !c.cfg.Guilds.Wanted {
		return nil
	}
	b, err := projection.NewGuild(g).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindGuild, Err: err}
	}
	p.Set(ctx, keyID(keyGuild, g.ID), b, c.cfg.Guilds.TTL)
	p.SAdd(ctx, keyGuilds, g.ID)
	return nil
}

// storeGuildUpdate applies the scalar fields of a guild update. Fixed
// fields patch the stored bytes in place; a name change re-encodes.
func (c *Cache) storeGuildUpdate(ctx context.Context, p *Pipe, u *model.PartialGuild) error {
	if !c.cfg.Guilds.Wanted {
		return nil
	}
	key := keyID(keyGuild, u.ID)
	b, err := c.fetch(ctx, key)
	if err != nil || b == nil {
		return err
	}
	ag, err := c.viewGuild(b)
	if err != nil {
		return err
	}
	if ag.PatchUpdate(u) {
		p.Set(ctx, key, ag.Bytes(), c.cfg.Guilds.TTL)
		return nil
	}
	g := ag.Deserialize()
	g.ApplyUpdate(u)
	out, err := g.Marshal()
	if err != nil {
		return &UpdateError{Kind: KindGuild, Err: err}
	}
	p.Set(ctx, key, out, c.cfg.Guilds.TTL)
	return nil
}

// guildScan holds the per-kind membership reads queued ahead of a guild
// cascade. Only wanted kinds get a handle.
type guildScan struct {
	members      *redis.StringSliceCmd
	channels     *redis.StringSliceCmd
	emojis       *redis.StringSliceCmd
	integrations *redis.StringSliceCmd
	presences    *redis.StringSliceCmd
	roles        *redis.StringSliceCmd
	events       *redis.StringSliceCmd
	stages       *redis.StringSliceCmd
	stickers     *redis.StringSliceCmd
	voice        *redis.StringSliceCmd
}

// deleteGuild removes a guild and everything scoped under it. The guild's
// per-kind id sets are read first, then every dependent record, meta
// record, and index entry goes in a second batch. Users are special:
// each member's guild set shrinks by one, and users left with no guilds
// are dropped entirely, which costs one more round trip to learn the
// cardinalities. The pipe must be empty on entry and is left flushed.
func (c *Cache) deleteGuild(ctx context.Context, p *Pipe, guildID uint64) error {
	var scan guildScan
	if c.cfg.Members.Wanted || c.cfg.Users.Wanted {
		scan.members = p.SMembers(ctx, keyID(keyGuildMembers, guildID))
	}
	if c.cfg.Channels.Wanted {
		scan.channels = p.SMembers(ctx, keyID(keyGuildChannels, guildID))
	}
	if c.cfg.Emojis.Wanted {
		scan.emojis = p.SMembers(ctx, keyID(keyGuildEmojis, guildID))
	}
	if c.cfg.Integrations.Wanted {
		scan.integrations = p.SMembers(ctx, keyID(keyGuildIntegr, guildID))
	}
	if c.cfg.Presences.Wanted {
		scan.presences = p.SMembers(ctx, keyID(keyGuildPresences, guildID))
	}
	if c.cfg.Roles.Wanted {
		scan.roles = p.SMembers(ctx, keyID(keyGuildRoles, guildID))
	}
	if c.cfg.ScheduledEvents.Wanted {
		scan.events = p.SMembers(ctx, keyID(keyGuildEvents, guildID))
	}
	if c.cfg.StageInstances.Wanted {
		scan.stages = p.SMembers(ctx, keyID(keyGuildStages, guildID))
	}
	if c.cfg.Stickers.Wanted {
		scan.stickers = p.SMembers(ctx, keyID(keyGuildStickers, guildID))
	}
	if c.cfg.VoiceStates.Wanted {
		scan.voice = p.SMembers(ctx, keyID(keyGuildVoice, guildID))
	}
	if err := p.Flush(ctx); err != nil {
		return err
	}

	if scan.members != nil {
		if err := c.cascadeMembers(ctx, p, guildID, idsFromStrings(scan.members.Val())); err != nil {
			return err
		}
	}
	if scan.channels != nil {
		c.cascadeScoped(ctx, p, guildID, idsFromStrings(scan.channels.Val()), keyChannel, keyChannelMeta, keyGuildChannels, keyChannels, c.cfg.Channels)
	}
	if scan.emojis != nil {
		c.cascadeScoped(ctx, p, guildID, idsFromStrings(scan.emojis.Val()), keyEmoji, keyEmojiMeta, keyGuildEmojis, keyEmojis, c.cfg.Emojis)
	}
	if scan.roles != nil {
		c.cascadeScoped(ctx, p, guildID, idsFromStrings(scan.roles.Val()), keyRole, keyRoleMeta, keyGuildRoles, keyRoles, c.cfg.Roles)
	}
	if scan.stickers != nil {
		c.cascadeScoped(ctx, p, guildID, idsFromStrings(scan.stickers.Val()), keySticker, keyStickerMeta, keyGuildStickers, keyStickers, c.cfg.Stickers)
	}
	if scan.events != nil {
		c.cascadeScoped(ctx, p, guildID, idsFromStrings(scan.events.Val()), keyScheduledEvent, keyScheduledMeta, keyGuildEvents, "", c.cfg.ScheduledEvents)
	}
	if scan.stages != nil {
		c.cascadeScoped(ctx, p, guildID, idsFromStrings(scan.stages.Val()), keyStageInstance, keyStageMeta, keyGuildStages, "", c.cfg.StageInstances)
	}
	if scan.integrations != nil {
		c.cascadeGuildKeyed(ctx, p, guildID, idsFromStrings(scan.integrations.Val()), keyIntegration, keyGuildIntegr)
	}
	if scan.presences != nil {
		c.cascadeGuildKeyed(ctx, p, guildID, idsFromStrings(scan.presences.Val()), keyPresence, keyGuildPresences)
	}
	if scan.voice != nil {
		c.cascadeGuildKeyed(ctx, p, guildID, idsFromStrings(scan.voice.Val()), keyVoiceState, keyGuildVoice)
	}

	if c.cfg.Guilds.Wanted {
		p.Del(ctx, keyID(keyGuild, guildID))
		p.SRem(ctx, keyGuilds, guildID)
	}
	p.SRem(ctx, keyUnavailable, guildID)
	return p.Flush(ctx)
}

// cascadeMembers removes the guild's member records and detaches each
// member's user. Users whose guild set empties out are estranged: their
// record and global set entry go too.
func (c *Cache) cascadeMembers(ctx context.Context, p *Pipe, guildID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	if c.cfg.Members.Wanted {
		keys := make([]string, 0, len(userIDs)+1)
		for _, uid := range userIDs {
			keys = append(keys, keyGuildID(keyMember, guildID, uid))
		}
		keys = append(keys, keyID(keyGuildMembers, guildID))
		p.Del(ctx, keys...)
	}
	if !c.cfg.Users.Wanted {
		return nil
	}

	cards := make([]*redis.IntCmd, len(userIDs))
	for i, uid := range userIDs {
		guildsKey := keyID(keyUserGuilds, uid)
		p.SRem(ctx, guildsKey, guildID)
		cards[i] = p.SCard(ctx, guildsKey)
	}
	if err := p.Flush(ctx); err != nil {
		return err
	}

	var estranged []uint64
	for i, card := range cards {
		if card.Val() == 0 {
			estranged = append(estranged, userIDs[i])
		}
	}
	if len(estranged) > 0 {
		keys := make([]string, 0, len(estranged)*2)
		for _, uid := range estranged {
			keys = append(keys, keyID(keyUser, uid), keyID(keyUserGuilds, uid))
		}
		p.Del(ctx, keys...)
		p.SRem(ctx, keyUsers, estranged...)
	}
	return nil
}

// cascadeScoped deletes records of a kind stored under plain id keys,
// with their meta records and global set membership. globalSet may be
// empty for kinds that keep no global id set.
func (c *Cache) cascadeScoped(ctx context.Context, p *Pipe, guildID uint64, ids []uint64, prefix, metaPrefix, guildSet, globalSet string, opts EntityOpts) {
	keys := make([]string, 0, len(ids)*2+1)
	for _, id := range ids {
		keys = append(keys, keyID(prefix, id))
		if opts.TTL > 0 {
			keys = append(keys, keyID(metaPrefix, id))
		}
	}
	keys = append(keys, keyID(guildSet, guildID))
	p.Del(ctx, keys...)
	if globalSet != "" {
		p.SRem(ctx, globalSet, ids...)
	}
}

// cascadeGuildKeyed deletes records of a kind whose keys embed the guild
// id. No meta records exist for these.
func (c *Cache) cascadeGuildKeyed(ctx context.Context, p *Pipe, guildID uint64, ids []uint64, prefix, guildSet string) {
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, keyGuildID(prefix, guildID, id))
	}
	keys = append(keys, keyID(guildSet, guildID))
	p.Del(ctx, keys...)
}

func (c *Cache) viewGuild(b []byte) (*projection.ArchivedGuild, error) {
	if c.cfg.TrustedViews {
		return projection.ViewGuildTrusted(b), nil
	}
	ag, err := projection.ViewGuild(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindGuild, Err: err}
	}
	return ag, nil
}
