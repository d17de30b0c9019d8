package cache

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Key prefixes. Every cache key is either a bare prefix, "{PREFIX}:{id}",
// or "{PREFIX}:{guild_id}:{id}" for kinds scoped under a guild. Prefixes
// never collide and never prefix one another ambiguously: the first colon
// always terminates the prefix.
const (
	keyChannel         = "CHANNEL"
	keyChannelMeta     = "CHANNEL_META"
	keyChannels        = "CHANNELS"
	keyChannelMessages = "CHANNEL_MESSAGES"
	keyCurrentUser     = "CURRENT_USER"
	keyEmoji           = "EMOJI"
	keyEmojiMeta       = "EMOJI_META"
	keyEmojis          = "EMOJIS"
	keyGuild           = "GUILD"
	keyGuilds          = "GUILDS"
	keyGuildChannels   = "GUILD_CHANNELS"
	keyGuildEmojis     = "GUILD_EMOJIS"
	keyGuildIntegr     = "GUILD_INTEGRATIONS"
	keyGuildMembers    = "GUILD_MEMBERS"
	keyGuildPresences  = "GUILD_PRESENCES"
	keyGuildRoles      = "GUILD_ROLES"
	keyGuildEvents     = "GUILD_SCHEDULED_EVENTS"
	keyGuildStages     = "GUILD_STAGE_INSTANCES"
	keyGuildStickers   = "GUILD_STICKERS"
	keyGuildVoice      = "GUILD_VOICE_STATES"
	keyIntegration     = "INTEGRATION"
	keyMember          = "MEMBER"
	keyMessage         = "MESSAGE"
	keyMessageMeta     = "MESSAGE_META"
	keyMessages        = "MESSAGES"
	keyPresence        = "PRESENCE"
	keyRole            = "ROLE"
	keyRoleMeta        = "ROLE_META"
	keyRoles           = "ROLES"
	keyScheduledEvent  = "SCHEDULED_EVENT"
	keyScheduledMeta   = "SCHEDULED_EVENT_META"
	keyStageInstance   = "STAGE_INSTANCE"
	keyStageMeta       = "STAGE_INSTANCE_META"
	keySticker         = "STICKER"
	keyStickerMeta     = "STICKER_META"
	keyStickers        = "STICKERS"
	keyUnavailable     = "UNAVAILABLE_GUILDS"
	keyUser            = "USER"
	keyUserGuilds      = "USER_GUILDS"
	keyUsers           = "USERS"
	keyVoiceState      = "VOICE_STATE"
	keyResumeURL       = "RESUME_URL"
	keySessions        = "SESSIONS"
)

func keyID(prefix string, id uint64) string {
	var b strings.Builder
	b.Grow(len(prefix) + 21)
	b.WriteString(prefix)
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(id, 10))
	return b.String()
}

func keyGuildID(prefix string, guildID, id uint64) string {
	var b strings.Builder
	b.Grow(len(prefix) + 42)
	b.WriteString(prefix)
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(guildID, 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(id, 10))
	return b.String()
}

// parseID decodes a decimal id from a set member or key segment. Zero is
// not a valid id anywhere in the cache.
func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidResponse, "malformed id %q", s)
	}
	if id == 0 {
		return 0, errors.Wrap(ErrInvalidResponse, "zero id")
	}
	return id, nil
}
