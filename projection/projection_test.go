package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swrge/randy/model"
)

func TestChannelRoundTrip(t *testing.T) {
	cases := []*model.Channel{
		{ID: 1, GuildID: 2, ParentID: 3, Kind: 5, Name: "general", LastPinTimestamp: 1234},
		{ID: 9}, // everything optional absent
	}
	for _, m := range cases {
		p := NewChannel(m)
		b, err := p.Marshal()
		require.NoError(t, err)
		a, err := ViewChannel(b)
		require.NoError(t, err)
		assert.Equal(t, p, a.Deserialize())
	}
}

func TestChannelPinPatchEquivalence(t *testing.T) {
	m := &model.Channel{ID: 7, GuildID: 1, Name: "pins", LastPinTimestamp: 100}
	b, err := NewChannel(m).Marshal()
	require.NoError(t, err)

	// Patch the archived record in place.
	a, err := ViewChannel(b)
	require.NoError(t, err)
	a.SetLastPinTimestamp(999)

	// Encode the already-updated projection.
	m.LastPinTimestamp = 999
	want, err := NewChannel(m).Marshal()
	require.NoError(t, err)

	assert.Equal(t, want, a.Bytes())
}

func TestGuildRoundTrip(t *testing.T) {
	g := &model.Guild{
		ID: 776, Name: "test guild", OwnerID: 1, AfkTimeout: 3600,
		DefaultMessageNotifications: 1, ExplicitContentFilter: 2, MfaLevel: 1,
		NSFWLevel: 3, PremiumTier: 2, VerificationLevel: 4, SystemChannelFlags: 0b1010,
	}
	p := NewGuild(g)
	b, err := p.Marshal()
	require.NoError(t, err)
	a, err := ViewGuild(b)
	require.NoError(t, err)
	assert.Equal(t, p, a.Deserialize())
}

func TestGuildPatchUpdate(t *testing.T) {
	g := &model.Guild{ID: 776, Name: "g", AfkTimeout: 3600}
	b, err := NewGuild(g).Marshal()
	require.NoError(t, err)
	a, err := ViewGuild(b)
	require.NoError(t, err)

	// Same-length name: in-place patch applies.
	ok := a.PatchUpdate(&model.PartialGuild{ID: 776, Name: "g", AfkTimeout: 1800})
	assert.True(t, ok)
	assert.EqualValues(t, 1800, a.AfkTimeout())
	assert.EqualValues(t, 776, a.ID())
	assert.Equal(t, "g", a.Name())

	// Changed name: caller must take the re-encode path.
	ok = a.PatchUpdate(&model.PartialGuild{ID: 776, Name: "renamed", AfkTimeout: 900})
	assert.False(t, ok)
	assert.EqualValues(t, 1800, a.AfkTimeout())
}

func TestMemberRoundTripAndPatch(t *testing.T) {
	m := &model.Member{
		User: model.User{ID: 42}, Nick: "nick", Pending: true, Deaf: true,
		RoleIDs: []uint64{5, 6}, JoinedAt: 111, CommunicationDisabledUntil: 222,
	}
	p := NewMember(111, m)
	b, err := p.Marshal()
	require.NoError(t, err)
	a, err := ViewMember(b)
	require.NoError(t, err)
	assert.Equal(t, p, a.Deserialize())

	ok := a.PatchUpdate(&model.MemberUpdate{
		GuildID: 111, User: model.User{ID: 42}, Nick: "nick",
		RoleIDs: []uint64{5, 6}, Pending: false, CommunicationDisabledUntil: 0,
	})
	assert.True(t, ok)
	assert.False(t, a.Pending())
	assert.EqualValues(t, 0, a.CommunicationDisabledUntil())
	assert.Equal(t, "nick", a.Nick())
	assert.Equal(t, []uint64{5, 6}, a.RoleIDs())

	// Role list changed: in-place patch refuses.
	ok = a.PatchUpdate(&model.MemberUpdate{Nick: "nick", RoleIDs: []uint64{5}})
	assert.False(t, ok)
}

func TestMessageRoundTripAndReactions(t *testing.T) {
	m := &model.Message{
		ID: 1, ChannelID: 2, Author: model.User{ID: 3}, Content: "hello",
		Kind: 0, Flags: 4, Timestamp: 1000, EditedTimestamp: 0, Pinned: true,
		Reactions: []model.Reaction{{Emoji: "a", Count: 2}, {Emoji: "b", Count: 3}},
	}
	p := NewMessage(m)
	b, err := p.Marshal()
	require.NoError(t, err)
	a, err := ViewMessage(b)
	require.NoError(t, err)
	assert.Equal(t, p, a.Deserialize())
	assert.EqualValues(t, 5, a.ReactionCount())

	a.AddReactions(1)
	assert.EqualValues(t, 6, a.ReactionCount())
	a.AddReactions(-10)
	assert.EqualValues(t, 0, a.ReactionCount())
}

func TestUserRoundTrip(t *testing.T) {
	u := &model.User{ID: 5, Name: "someone", Discriminator: 1234, Bot: true, PublicFlags: 64}
	p := NewUser(u)
	b, err := p.Marshal()
	require.NoError(t, err)
	a, err := ViewUser(b)
	require.NoError(t, err)
	assert.Equal(t, p, a.Deserialize())
}

func TestRoleRoundTrip(t *testing.T) {
	r := &model.Role{ID: 1, Name: "admin", Color: 0xFF0000, Position: -2, Permissions: 8, Hoist: true}
	p := NewRole(9, r)
	b, err := p.Marshal()
	require.NoError(t, err)
	a, err := ViewRole(b)
	require.NoError(t, err)
	assert.Equal(t, p, a.Deserialize())
	assert.EqualValues(t, -2, a.Position())
}

func TestSmallKindsRoundTrip(t *testing.T) {
	pr := NewPresence(&model.Presence{UserID: 1, GuildID: 2, Status: 3})
	b, err := pr.Marshal()
	require.NoError(t, err)
	ap, err := ViewPresence(b)
	require.NoError(t, err)
	assert.Equal(t, pr, ap.Deserialize())

	em := NewEmoji(&model.Emoji{ID: 4, Name: "blob", Animated: true})
	b, err = em.Marshal()
	require.NoError(t, err)
	ae, err := ViewEmoji(b)
	require.NoError(t, err)
	assert.Equal(t, em, ae.Deserialize())

	st := NewSticker(&model.Sticker{ID: 5, GuildID: 6, Name: "s", Description: "d", FormatType: 1})
	b, err = st.Marshal()
	require.NoError(t, err)
	as, err := ViewSticker(b)
	require.NoError(t, err)
	assert.Equal(t, st, as.Deserialize())

	in := NewIntegration(&model.Integration{ID: 7, GuildID: 8, UserID: 9, Name: "bot", Kind: "discord", Enabled: true})
	b, err = in.Marshal()
	require.NoError(t, err)
	ai, err := ViewIntegration(b)
	require.NoError(t, err)
	assert.Equal(t, in, ai.Deserialize())

	si := NewStageInstance(&model.StageInstance{ID: 10, GuildID: 11, ChannelID: 12, Topic: "talk"})
	b, err = si.Marshal()
	require.NoError(t, err)
	asi, err := ViewStageInstance(b)
	require.NoError(t, err)
	assert.Equal(t, si, asi.Deserialize())

	vs := NewVoiceState(&model.VoiceState{GuildID: 13, UserID: 14, ChannelID: 15, SessionID: "abc", SelfMute: true})
	b, err = vs.Marshal()
	require.NoError(t, err)
	av, err := ViewVoiceState(b)
	require.NoError(t, err)
	assert.Equal(t, vs, av.Deserialize())

	cu := NewCurrentUser(&model.CurrentUser{ID: 16, Name: "me", Discriminator: 1})
	b, err = cu.Marshal()
	require.NoError(t, err)
	ac, err := ViewCurrentUser(b)
	require.NoError(t, err)
	assert.Equal(t, cu, ac.Deserialize())
}

func TestScheduledEventUserCountPatch(t *testing.T) {
	e := NewScheduledEvent(&model.ScheduledEvent{ID: 1, GuildID: 2, Name: "launch", UserCount: 3, Status: 1})
	b, err := e.Marshal()
	require.NoError(t, err)
	a, err := ViewScheduledEvent(b)
	require.NoError(t, err)

	a.AddUsers(2)
	assert.EqualValues(t, 5, a.UserCount())
	a.AddUsers(-7)
	assert.EqualValues(t, 0, a.UserCount())
	a.SetStatus(3)
	assert.EqualValues(t, 3, a.Status())
	assert.Equal(t, "launch", a.Name())
}

func TestViewRejectsCorruptRecords(t *testing.T) {
	b, err := NewUser(&model.User{ID: 1, Name: "abc"}).Marshal()
	require.NoError(t, err)

	_, err = ViewUser(b[:len(b)-1])
	assert.Error(t, err)

	_, err = ViewUser(append(b, 0))
	assert.Error(t, err)

	_, err = ViewGuild(b) // wrong kind's layout
	assert.Error(t, err)
}
