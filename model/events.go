package model

// Event is a decoded gateway event. The set of implementations is closed;
// the cache dispatches on the concrete type.
type Event interface {
	event()
}

type ChannelCreate struct{ Channel Channel }

type ChannelUpdate struct{ Channel Channel }

type ChannelDelete struct {
	ID      uint64
	GuildID uint64
}

type ChannelPinsUpdate struct {
	ChannelID        uint64
	GuildID          uint64
	LastPinTimestamp int64
}

type ThreadCreate struct{ Channel Channel }

type ThreadUpdate struct{ Channel Channel }

type ThreadDelete struct {
	ID      uint64
	GuildID uint64
}

type GuildCreate struct{ Guild Guild }

type GuildUpdate struct{ Guild PartialGuild }

// GuildDelete signals either a kick/leave (Unavailable false, cached state is
// dropped) or an outage (Unavailable true, the guild is tracked as
// unavailable instead).
type GuildDelete struct {
	ID          uint64
	Unavailable bool
}

type GuildEmojisUpdate struct {
	GuildID uint64
	Emojis  []Emoji
}

type GuildStickersUpdate struct {
	GuildID  uint64
	Stickers []Sticker
}

type IntegrationCreate struct{ Integration Integration }

type IntegrationUpdate struct{ Integration Integration }

type IntegrationDelete struct {
	GuildID uint64
	ID      uint64
}

type MemberAdd struct {
	GuildID uint64
	Member  Member
}

type MemberUpdate struct {
	GuildID                    uint64
	User                       User
	Nick                       string
	RoleIDs                    []uint64
	CommunicationDisabledUntil int64
	Pending                    bool
}

type MemberRemove struct {
	GuildID uint64
	User    User
}

// MemberChunk is a bulk member delivery in response to a member request.
type MemberChunk struct {
	GuildID uint64
	Members []Member
}

type MessageCreate struct{ Message Message }

type MessageUpdate struct {
	ID              uint64
	ChannelID       uint64
	GuildID         uint64
	Author          User
	Kind            uint8
	Flags           uint64
	Timestamp       int64
	EditedTimestamp int64
	Pinned          bool
}

type MessageDelete struct {
	ID        uint64
	ChannelID uint64
}

type MessageDeleteBulk struct {
	ChannelID uint64
	IDs       []uint64
}

type ReactionAdd struct {
	MessageID uint64
	ChannelID uint64
	GuildID   uint64
	UserID    uint64
	Emoji     string
	Member    *Member
}

type ReactionRemove struct {
	MessageID uint64
	ChannelID uint64
	UserID    uint64
	Emoji     string
}

type ReactionRemoveAll struct {
	MessageID uint64
	ChannelID uint64
}

type ReactionRemoveEmoji struct {
	MessageID uint64
	ChannelID uint64
	Emoji     string
}

type PresenceUpdate struct{ Presence Presence }

type RoleCreate struct {
	GuildID uint64
	Role    Role
}

type RoleUpdate struct {
	GuildID uint64
	Role    Role
}

type RoleDelete struct {
	GuildID uint64
	RoleID  uint64
}

type ScheduledEventCreate struct{ Event ScheduledEvent }

type ScheduledEventUpdate struct{ Event ScheduledEvent }

type ScheduledEventDelete struct {
	GuildID uint64
	ID      uint64
}

type ScheduledEventUserAdd struct {
	GuildID uint64
	EventID uint64
	UserID  uint64
}

type ScheduledEventUserRemove struct {
	GuildID uint64
	EventID uint64
	UserID  uint64
}

type StageInstanceCreate struct{ StageInstance StageInstance }

type StageInstanceUpdate struct{ StageInstance StageInstance }

type StageInstanceDelete struct {
	GuildID uint64
	ID      uint64
}

// Ready opens a session: the authenticated user plus the ids of guilds that
// will arrive (or stay) unavailable.
type Ready struct {
	CurrentUser CurrentUser
	GuildIDs    []uint64
}

type UserUpdate struct{ CurrentUser CurrentUser }

type VoiceStateUpdate struct{ VoiceState VoiceState }

func (ChannelCreate) event()            {}
func (ChannelUpdate) event()            {}
func (ChannelDelete) event()            {}
func (ChannelPinsUpdate) event()        {}
func (ThreadCreate) event()             {}
func (ThreadUpdate) event()             {}
func (ThreadDelete) event()             {}
func (GuildCreate) event()              {}
func (GuildUpdate) event()              {}
func (GuildDelete) event()              {}
func (GuildEmojisUpdate) event()        {}
func (GuildStickersUpdate) event()      {}
func (IntegrationCreate) event()        {}
func (IntegrationUpdate) event()        {}
func (IntegrationDelete) event()        {}
func (MemberAdd) event()                {}
func (MemberUpdate) event()             {}
func (MemberRemove) event()             {}
func (MemberChunk) event()              {}
func (MessageCreate) event()            {}
func (MessageUpdate) event()            {}
func (MessageDelete) event()            {}
func (MessageDeleteBulk) event()        {}
func (ReactionAdd) event()              {}
func (ReactionRemove) event()           {}
func (ReactionRemoveAll) event()        {}
func (ReactionRemoveEmoji) event()      {}
func (PresenceUpdate) event()           {}
func (RoleCreate) event()               {}
func (RoleUpdate) event()               {}
func (RoleDelete) event()               {}
func (ScheduledEventCreate) event()     {}
func (ScheduledEventUpdate) event()     {}
func (ScheduledEventDelete) event()     {}
func (ScheduledEventUserAdd) event()    {}
func (ScheduledEventUserRemove) event() {}
func (StageInstanceCreate) event()      {}
func (StageInstanceUpdate) event()      {}
func (StageInstanceDelete) event()      {}
func (Ready) event()                    {}
func (UserUpdate) event()               {}
func (VoiceStateUpdate) event()         {}
