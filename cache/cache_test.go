package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swrge/randy/model"
)

func newTestCache(t *testing.T, cfg Config) (*miniredis.Miniredis, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })
	return mr, New(client, cfg)
}

func testGuild() model.Guild {
	return model.Guild{
		ID:         776,
		Name:       "testing-grounds",
		OwnerID:    9100,
		AfkTimeout: 3600,
		Channels: []model.Channel{
			{ID: 801, Kind: 0, Name: "general"},
		},
		Members: []model.Member{
			{User: model.User{ID: 9100, Name: "owner"}, Nick: "boss", JoinedAt: 1_600_000_000_000_000},
			{User: model.User{ID: 9200, Name: "regular"}, Pending: true},
		},
		Roles: []model.Role{
			{ID: 501, Name: "admin", Permissions: 8, Position: 1},
		},
		Stickers: []model.Sticker{
			{ID: 601, Name: "wave", FormatType: 1},
			{ID: 602, Name: "clap", FormatType: 2},
		},
	}
}

func TestGuildCreatePopulatesIndexes(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))

	g, err := c.Guild(ctx, 776)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "testing-grounds", g.Name())
	assert.Equal(t, uint64(9100), g.OwnerID())
	assert.Equal(t, uint16(3600), g.AfkTimeout())

	guildIDs, err := c.GuildIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{776}, guildIDs)

	channelIDs, err := c.GuildChannelIDs(ctx, 776)
	require.NoError(t, err)
	assert.Equal(t, []uint64{801}, channelIDs)

	stickerIDs, err := c.GuildStickerIDs(ctx, 776)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{601, 602}, stickerIDs)

	// Every id in an index set resolves to a stored record.
	for _, id := range stickerIDs {
		s, err := c.Sticker(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, s)
	}
	ch, err := c.Channel(ctx, 801)
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "general", ch.Name())
	assert.Equal(t, uint64(776), ch.GuildID())

	memberIDs, err := c.GuildMemberIDs(ctx, 776)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{9100, 9200}, memberIDs)

	m, err := c.Member(ctx, 776, 9100)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "boss", m.Nick())

	// Members register their users and the reverse guild mapping.
	userIDs, err := c.UserIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{9100, 9200}, userIDs)
	common, err := c.CommonGuildIDs(ctx, 9200)
	require.NoError(t, err)
	assert.Equal(t, []uint64{776}, common)
}

func TestGuildCreateIsIdempotent(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))
	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))

	guilds, err := c.Stats().Guilds(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), guilds)
	members, err := c.Stats().GuildMembers(ctx, 776)
	require.NoError(t, err)
	assert.Equal(t, int64(2), members)
	stickers, err := c.Stats().GuildStickers(ctx, 776)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stickers)
}

func TestGuildUpdatePatchesInPlace(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))
	require.NoError(t, c.Update(ctx, model.GuildUpdate{Guild: model.PartialGuild{
		ID:         776,
		Name:       "testing-grounds",
		OwnerID:    9100,
		AfkTimeout: 1800,
	}}))

	g, err := c.Guild(ctx, 776)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, uint16(1800), g.AfkTimeout())
	assert.Equal(t, "testing-grounds", g.Name())
}

func TestGuildUpdateReencodesOnNameChange(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))
	require.NoError(t, c.Update(ctx, model.GuildUpdate{Guild: model.PartialGuild{
		ID:      776,
		Name:    "renamed-much-longer-than-before",
		OwnerID: 9100,
	}}))

	g, err := c.Guild(ctx, 776)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "renamed-much-longer-than-before", g.Name())
}

func TestMemberUpdatePendingFlag(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))

	before, err := c.Member(ctx, 776, 9200)
	require.NoError(t, err)
	require.NotNil(t, before)
	require.True(t, before.Pending())

	require.NoError(t, c.Update(ctx, model.MemberUpdate{
		GuildID: 776,
		User:    model.User{ID: 9200, Name: "regular"},
		Pending: false,
	}))

	after, err := c.Member(ctx, 776, 9200)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.False(t, after.Pending())
}

func TestMemberRemoveKeepsSharedUser(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	shared := model.Member{User: model.User{ID: 42, Name: "shared"}}
	require.NoError(t, c.Update(ctx, model.MemberAdd{GuildID: 1, Member: shared}))
	require.NoError(t, c.Update(ctx, model.MemberAdd{GuildID: 2, Member: shared}))

	require.NoError(t, c.Update(ctx, model.MemberRemove{GuildID: 1, User: shared.User}))
	u, err := c.User(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, u, "user still belongs to guild 2")

	require.NoError(t, c.Update(ctx, model.MemberRemove{GuildID: 2, User: shared.User}))
	u, err = c.User(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u, "last membership gone, user dropped")
	ids, err := c.UserIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGuildDeleteCascades(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))
	// 9100 is also in another guild and must survive the cascade.
	require.NoError(t, c.Update(ctx, model.MemberAdd{
		GuildID: 777,
		Member:  model.Member{User: model.User{ID: 9100, Name: "owner"}},
	}))

	require.NoError(t, c.Update(ctx, model.GuildDelete{ID: 776}))

	g, err := c.Guild(ctx, 776)
	require.NoError(t, err)
	assert.Nil(t, g)

	ch, err := c.Channel(ctx, 801)
	require.NoError(t, err)
	assert.Nil(t, ch)
	channelIDs, err := c.ChannelIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, channelIDs)

	for _, id := range []uint64{601, 602} {
		s, err := c.Sticker(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, s)
	}
	r, err := c.Role(ctx, 501)
	require.NoError(t, err)
	assert.Nil(t, r)

	memberCount, err := c.Stats().GuildMembers(ctx, 776)
	require.NoError(t, err)
	assert.Zero(t, memberCount)

	// 9200 was only in guild 776: estranged. 9100 lives on.
	userIDs, err := c.UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{9100}, userIDs)
	u, err := c.User(ctx, 9200)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMessageOrderingNewestFirst(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	base := int64(1_700_000_000_000_000)
	for i, id := range []uint64{11, 12, 13} {
		require.NoError(t, c.Update(ctx, model.MessageCreate{Message: model.Message{
			ID:        id,
			ChannelID: 900,
			Author:    model.User{ID: 5, Name: "author"},
			Content:   "hello",
			Timestamp: base + int64(i),
		}}))
	}

	ids, err := c.ChannelMessageIDs(ctx, 900, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{13, 12, 11}, ids)

	ids, err = c.ChannelMessageIDs(ctx, 900, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{13, 12}, ids)

	msgs, err := c.ChannelMessages(ctx, 900, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, uint64(13), msgs[0].ID())
	assert.Equal(t, "hello", msgs[0].Content())
}

func TestMessageDeleteBulk(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	for _, id := range []uint64{21, 22, 23} {
		require.NoError(t, c.Update(ctx, model.MessageCreate{Message: model.Message{
			ID:        id,
			ChannelID: 901,
			Author:    model.User{ID: 5, Name: "author"},
			Timestamp: int64(id),
		}}))
	}
	require.NoError(t, c.Update(ctx, model.MessageDeleteBulk{ChannelID: 901, IDs: []uint64{21, 23}}))

	ids, err := c.ChannelMessageIDs(ctx, 901, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{22}, ids)
	m, err := c.Message(ctx, 21)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestReactionCounts(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.MessageCreate{Message: model.Message{
		ID:        31,
		ChannelID: 902,
		Author:    model.User{ID: 5, Name: "author"},
		Timestamp: 1,
		Reactions: []model.Reaction{{Emoji: "👍", Count: 2}},
	}}))

	require.NoError(t, c.Update(ctx, model.ReactionAdd{MessageID: 31, ChannelID: 902, UserID: 6, Emoji: "👍"}))
	m, err := c.Message(ctx, 31)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, uint32(3), m.ReactionCount())

	require.NoError(t, c.Update(ctx, model.ReactionRemove{MessageID: 31, ChannelID: 902, UserID: 6, Emoji: "👍"}))
	m, err = c.Message(ctx, 31)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), m.ReactionCount())

	require.NoError(t, c.Update(ctx, model.ReactionRemoveAll{MessageID: 31, ChannelID: 902}))
	m, err = c.Message(ctx, 31)
	require.NoError(t, err)
	assert.Zero(t, m.ReactionCount())
}

func TestChannelPinsUpdate(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.ChannelCreate{Channel: model.Channel{
		ID: 801, GuildID: 776, Name: "general",
	}}))
	require.NoError(t, c.Update(ctx, model.ChannelPinsUpdate{
		ChannelID:        801,
		GuildID:          776,
		LastPinTimestamp: 12345,
	}))

	ch, err := c.Channel(ctx, 801)
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, int64(12345), ch.LastPinTimestamp())
	assert.Equal(t, "general", ch.Name())
}

func TestVoiceStateDisconnectDeletes(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.VoiceStateUpdate{VoiceState: model.VoiceState{
		GuildID: 776, UserID: 9100, ChannelID: 850, SessionID: "abc",
	}}))
	v, err := c.VoiceState(ctx, 776, 9100)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "abc", v.SessionID())

	require.NoError(t, c.Update(ctx, model.VoiceStateUpdate{VoiceState: model.VoiceState{
		GuildID: 776, UserID: 9100, ChannelID: 0,
	}}))
	v, err = c.VoiceState(ctx, 776, 9100)
	require.NoError(t, err)
	assert.Nil(t, v)
	ids, err := c.GuildVoiceStateIDs(ctx, 776)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEmojiSyncRemovesStale(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildEmojisUpdate{
		GuildID: 776,
		Emojis:  []model.Emoji{{ID: 701, Name: "old"}, {ID: 702, Name: "kept"}},
	}))
	require.NoError(t, c.Update(ctx, model.GuildEmojisUpdate{
		GuildID: 776,
		Emojis:  []model.Emoji{{ID: 702, Name: "kept"}, {ID: 703, Name: "new"}},
	}))

	ids, err := c.GuildEmojiIDs(ctx, 776)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{702, 703}, ids)
	e, err := c.Emoji(ctx, 701)
	require.NoError(t, err)
	assert.Nil(t, e)
	global, err := c.EmojiIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{702, 703}, global)
}

func TestUnavailableGuilds(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.Ready{
		CurrentUser: model.CurrentUser{ID: 1, Name: "bot"},
		GuildIDs:    []uint64{776, 777},
	}))
	ids, err := c.UnavailableGuildIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{776, 777}, ids)

	cu, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cu)
	assert.Equal(t, "bot", cu.Name())

	// The guild arriving clears the flag.
	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))
	ids, err = c.UnavailableGuildIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{777}, ids)

	// An outage delete re-flags without dropping state.
	require.NoError(t, c.Update(ctx, model.GuildDelete{ID: 776, Unavailable: true}))
	ids, err = c.UnavailableGuildIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{776, 777}, ids)
	g, err := c.Guild(ctx, 776)
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestUnwantedKindsAreSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Messages = EntityOpts{}
	cfg.Presences = EntityOpts{}
	_, c := newTestCache(t, cfg)
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.MessageCreate{Message: model.Message{
		ID: 41, ChannelID: 903, Author: model.User{ID: 5, Name: "author"}, Timestamp: 1,
	}}))
	m, err := c.Message(ctx, 41)
	require.NoError(t, err)
	assert.Nil(t, m)

	// The author still lands in the user cache.
	u, err := c.User(ctx, 5)
	require.NoError(t, err)
	assert.NotNil(t, u)

	require.NoError(t, c.Update(ctx, model.PresenceUpdate{Presence: model.Presence{
		UserID: 5, GuildID: 776, Status: 1,
	}}))
	pr, err := c.Presence(ctx, 776, 5)
	require.NoError(t, err)
	assert.Nil(t, pr)
}

func TestExpirationRepairsIndexes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channels.TTL = time.Minute
	cfg.Messages.TTL = time.Minute
	mr, c := newTestCache(t, cfg)
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.ChannelCreate{Channel: model.Channel{
		ID: 801, GuildID: 776, Name: "general",
	}}))
	require.NoError(t, c.Update(ctx, model.MessageCreate{Message: model.Message{
		ID: 51, ChannelID: 801, Author: model.User{ID: 5, Name: "author"}, Timestamp: 1,
	}}))

	// Values expire; the meta records outlive them.
	mr.FastForward(time.Minute + time.Second)
	require.NoError(t, c.HandleExpired(ctx, "CHANNEL:801"))
	require.NoError(t, c.HandleExpired(ctx, "MESSAGE:51"))

	channelIDs, err := c.ChannelIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, channelIDs)
	guildChannels, err := c.GuildChannelIDs(ctx, 776)
	require.NoError(t, err)
	assert.Empty(t, guildChannels)

	messageIDs, err := c.MessageIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, messageIDs)
	indexed, err := c.ChannelMessageIDs(ctx, 801, 0)
	require.NoError(t, err)
	assert.Empty(t, indexed)
}

func TestHandleExpiredIgnoresForeignKeys(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	assert.NoError(t, c.HandleExpired(ctx, "some-other-key"))
	assert.NoError(t, c.HandleExpired(ctx, "CHANNEL_META:801"))
	assert.NoError(t, c.HandleExpired(ctx, "CHANNEL:not-a-number"))
}

func TestMemberExpirationDropsLonelyUser(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Members.TTL = time.Minute
	mr, c := newTestCache(t, cfg)
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.MemberAdd{
		GuildID: 776,
		Member:  model.Member{User: model.User{ID: 42, Name: "lonely"}},
	}))

	mr.FastForward(2 * time.Minute)
	require.NoError(t, c.HandleExpired(ctx, "MEMBER:776:42"))

	ids, err := c.GuildMemberIDs(ctx, 776)
	require.NoError(t, err)
	assert.Empty(t, ids)
	u, err := c.User(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSessionFreezeThaw(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	sessions := map[uint32]model.Session{
		0: {ID: "sess-a", Sequence: 120},
		1: {ID: "sess-b", Sequence: 7},
	}
	require.NoError(t, c.FreezeSessions(ctx, "wss://resume.example", sessions, time.Hour))

	url, thawed, err := c.ThawSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "wss://resume.example", url)
	assert.Equal(t, sessions, thawed)

	// Consumed on read.
	url, thawed, err = c.ThawSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Nil(t, thawed)
}

func TestUsersByIDsKeepsSlots(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))

	users, err := c.UsersByIDs(ctx, []uint64{9100, 1234, 9200})
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.NotNil(t, users[0])
	assert.Equal(t, "owner", users[0].Name())
	assert.Nil(t, users[1])
	require.NotNil(t, users[2])
	assert.Equal(t, "regular", users[2].Name())
}

func TestStatsCounts(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))

	s := c.Stats()
	guilds, err := s.Guilds(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), guilds)
	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), users)
	roles, err := s.GuildRoles(ctx, 776)
	require.NoError(t, err)
	assert.Equal(t, int64(1), roles)
}
