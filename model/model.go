// Package model defines the decoded gateway payloads consumed by the cache
// engine. The gateway session client decodes wire frames into these types;
// the cache never parses raw payloads itself.
//
// Identifiers are snowflake ids carried as uint64. Zero is never a valid id
// and doubles as "absent" for optional references. Timestamps are microseconds
// since the Unix epoch, zero meaning "unset".
package model

// Channel is a text, voice, thread or DM channel.
type Channel struct {
	ID               uint64
	GuildID          uint64 // 0 for DM channels
	ParentID         uint64 // 0 when top-level
	Kind             uint8
	Name             string
	LastPinTimestamp int64
	// Recipients are the users embedded in DM channel payloads.
	Recipients []User
}

// Guild is a full guild snapshot as delivered by a guild-create payload,
// bundling every owned sub-entity.
type Guild struct {
	ID                          uint64
	Name                        string
	OwnerID                     uint64
	AfkTimeout                  uint16 // seconds
	DefaultMessageNotifications uint8
	ExplicitContentFilter       uint8
	MfaLevel                    uint8
	NSFWLevel                   uint8
	PremiumTier                 uint8
	VerificationLevel           uint8
	SystemChannelFlags          uint64
	Unavailable                 bool

	Channels        []Channel
	Threads         []Channel
	Members         []Member
	Roles           []Role
	Emojis          []Emoji
	Stickers        []Sticker
	Presences       []Presence
	VoiceStates     []VoiceState
	StageInstances  []StageInstance
	ScheduledEvents []ScheduledEvent
}

// PartialGuild carries the scalar guild fields of a guild-update payload.
// Sub-entities never arrive on updates.
type PartialGuild struct {
	ID                          uint64
	Name                        string
	OwnerID                     uint64
	AfkTimeout                  uint16
	DefaultMessageNotifications uint8
	ExplicitContentFilter       uint8
	MfaLevel                    uint8
	NSFWLevel                   uint8
	PremiumTier                 uint8
	VerificationLevel           uint8
	SystemChannelFlags          uint64
}

// Member is a guild membership with its embedded user.
type Member struct {
	User                       User
	Nick                       string
	RoleIDs                    []uint64
	JoinedAt                   int64
	CommunicationDisabledUntil int64
	Pending                    bool
	Deaf                       bool
	Mute                       bool
}

// PartialMember is the reduced member shape embedded in message payloads.
// User may be nil when the surrounding payload carries the author separately.
type PartialMember struct {
	User     *User
	Nick     string
	RoleIDs  []uint64
	JoinedAt int64
	Pending  bool
}

// User is a platform account shared across guilds.
type User struct {
	ID            uint64
	Name          string
	Discriminator uint16
	PublicFlags   uint64
	Bot           bool
}

// PartialUser carries the user fields of payloads that embed a reduced user.
type PartialUser struct {
	ID            uint64
	Name          string
	Discriminator uint16
	PublicFlags   uint64
}

// CurrentUser is the account the gateway session is authenticated as.
type CurrentUser struct {
	ID            uint64
	Name          string
	Discriminator uint16
	PublicFlags   uint64
}

// Message is a chat message.
type Message struct {
	ID              uint64
	ChannelID       uint64
	GuildID         uint64 // 0 outside guilds
	Author          User
	Member          *PartialMember
	Content         string
	Kind            uint8
	Flags           uint64
	Timestamp       int64
	EditedTimestamp int64
	Pinned          bool
	Reactions       []Reaction
	Mentions        []Mention
	Thread          *Channel
}

// Reaction is an emoji reaction aggregate on a message.
type Reaction struct {
	Emoji string
	Count uint32
}

// Mention is a user mentioned in a message, optionally with their membership.
type Mention struct {
	User   User
	Member *PartialMember
}

// Role is a guild role.
type Role struct {
	ID          uint64
	GuildID     uint64
	Name        string
	Color       uint32
	Position    int32
	Permissions uint64
	Hoist       bool
	Managed     bool
	Mentionable bool
}

// Presence is a user's online status within a guild.
type Presence struct {
	UserID  uint64
	GuildID uint64
	Status  uint8
}

// Emoji is a custom guild emoji.
type Emoji struct {
	ID       uint64
	Name     string
	Animated bool
	Managed  bool
}

// Sticker is a custom guild sticker.
type Sticker struct {
	ID          uint64
	GuildID     uint64
	Name        string
	Description string
	FormatType  uint8
}

// Integration is a third-party service hooked into a guild.
type Integration struct {
	ID      uint64
	GuildID uint64
	UserID  uint64 // 0 when the integration has no bound account
	Name    string
	Kind    string
	Enabled bool
}

// StageInstance is a live stage within a stage channel.
type StageInstance struct {
	ID        uint64
	GuildID   uint64
	ChannelID uint64
	Topic     string
}

// ScheduledEvent is a scheduled guild event.
type ScheduledEvent struct {
	ID        uint64
	GuildID   uint64
	ChannelID uint64
	Name      string
	Status    uint8
	StartTime int64
	EndTime   int64
	UserCount uint32
}

// VoiceState is a user's voice connection within a guild.
type VoiceState struct {
	GuildID   uint64
	UserID    uint64
	ChannelID uint64
	SessionID string
	Deaf      bool
	Mute      bool
	SelfDeaf  bool
	SelfMute  bool
}

// Session identifies a resumable gateway session for one shard.
type Session struct {
	ID       string
	Sequence uint64
}
