package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeMember(ctx context.Context, p *Pipe, guildID uint64, m *model.Member) error {
	if err := c.storeUser(ctx, p, &m.User); err != nil {
		return err
	}
	if c.cfg.Users.Wanted && m.User.ID != 0 {
		p.SAdd(ctx, keyID(keyUserGuilds, m.User.ID), guildID)
	}
	if !c.cfg.Members.Wanted || m.User.ID == 0 {
		return nil
	}

	b, err := projection.NewMember(guildID, m).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindMember, Err: err}
	}
	p.Set(ctx, keyGuildID(keyMember, guildID, m.User.ID), b, c.cfg.Members.TTL)
	p.SAdd(ctx, keyID(keyGuildMembers, guildID), m.User.ID)
	return nil
}

func (c *Cache) storeMembers(ctx context.Context, p *Pipe, guildID uint64, members []model.Member) error {
	if len(members) == 0 {
		return nil
	}

	users := make([]model.User, 0, len(members))
	for i := range members {
		if members[i].User.ID != 0 {
			users = append(users, members[i].User)
		}
	}
	if err := c.storeUsers(ctx, p, users); err != nil {
		return err
	}
	if c.cfg.Users.Wanted {
		for i := range users {
			p.SAdd(ctx, keyID(keyUserGuilds, users[i].ID), guildID)
		}
	}
	if !c.cfg.Members.Wanted {
		return nil
	}

	pairs := make([]KV, 0, len(members))
	ids := make([]uint64, 0, len(members))
	for i := range members {
		m := &members[i]
		if m.User.ID == 0 {
			continue
		}
		b, err := projection.NewMember(guildID, m).Marshal()
		if err != nil {
			return &SerializeError{Kind: KindMember, Err: err}
		}
		pairs = append(pairs, KV{Key: keyGuildID(keyMember, guildID, m.User.ID), Value: b})
		ids = append(ids, m.User.ID)
	}
	p.MSet(ctx, pairs, c.cfg.Members.TTL)
	p.SAdd(ctx, keyID(keyGuildMembers, guildID), ids...)
	return nil
}

// storeMemberUpdate applies a member update to the stored record. The
// fixed fields patch in place; a nick or role change forces a re-encode.
// An update for a member that was never stored only refreshes the index
// sets and the embedded user.
func (c *Cache) storeMemberUpdate(ctx context.Context, p *Pipe, ev *model.MemberUpdate) error {
	if err := c.storeUser(ctx, p, &ev.User); err != nil {
		return err
	}
	if c.cfg.Users.Wanted && ev.User.ID != 0 {
		p.SAdd(ctx, keyID(keyUserGuilds, ev.User.ID), ev.GuildID)
	}
	if !c.cfg.Members.Wanted || ev.User.ID == 0 {
		return nil
	}
	p.SAdd(ctx, keyID(keyGuildMembers, ev.GuildID), ev.User.ID)

	key := keyGuildID(keyMember, ev.GuildID, ev.User.ID)
	b, err := c.fetch(ctx, key)
	if err != nil || b == nil {
		return err
	}
	am, err := c.viewMember(b)
	if err != nil {
		return err
	}
	if am.PatchUpdate(ev) {
		p.Set(ctx, key, am.Bytes(), c.cfg.Members.TTL)
		return nil
	}
	m := am.Deserialize()
	m.Nick = ev.Nick
	m.RoleIDs = ev.RoleIDs
	m.Pending = ev.Pending
	m.CommunicationDisabledUntil = ev.CommunicationDisabledUntil
	out, err := m.Marshal()
	if err != nil {
		return &UpdateError{Kind: KindMember, Err: err}
	}
	p.Set(ctx, key, out, c.cfg.Members.TTL)
	return nil
}

// storePartialMember refreshes member state carried piggyback on another
// event, such as a message author or mention. The user identifies the
// member; the partial never creates a record, only updates one.
func (c *Cache) storePartialMember(ctx context.Context, p *Pipe, guildID uint64, user *model.User, pm *model.PartialMember) error {
	if guildID == 0 || user == nil || user.ID == 0 {
		return nil
	}
	if err := c.storeUser(ctx, p, user); err != nil {
		return err
	}
	if c.cfg.Users.Wanted {
		p.SAdd(ctx, keyID(keyUserGuilds, user.ID), guildID)
	}
	if !c.cfg.Members.Wanted {
		return nil
	}
	p.SAdd(ctx, keyID(keyGuildMembers, guildID), user.ID)
	if pm == nil {
		return nil
	}

	key := keyGuildID(keyMember, guildID, user.ID)
	b, err := c.fetch(ctx, key)
	if err != nil || b == nil {
		return err
	}
	am, err := c.viewMember(b)
	if err != nil {
		return err
	}
	m := am.Deserialize()
	m.Nick = pm.Nick
	m.RoleIDs = pm.RoleIDs
	if pm.JoinedAt != 0 {
		m.JoinedAt = pm.JoinedAt
	}
	out, err := m.Marshal()
	if err != nil {
		return &UpdateError{Kind: KindMember, Err: err}
	}
	p.Set(ctx, key, out, c.cfg.Members.TTL)
	return nil
}

func (c *Cache) deleteMember(ctx context.Context, p *Pipe, guildID, userID uint64) error {
	if err := c.deleteUser(ctx, p, userID, guildID); err != nil {
		return err
	}
	if c.cfg.Members.Wanted {
		p.Del(ctx, keyGuildID(keyMember, guildID, userID))
		p.SRem(ctx, keyID(keyGuildMembers, guildID), userID)
	}
	return nil
}

func (c *Cache) viewMember(b []byte) (*projection.ArchivedMember, error) {
	if c.cfg.TrustedViews {
		return projection.ViewMemberTrusted(b), nil
	}
	am, err := projection.ViewMember(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindMember, Err: err}
	}
	return am, nil
}
