package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeUser(ctx context.Context, p *Pipe, u *model.User) error {
	if !c.cfg.Users.Wanted || u == nil || u.ID == 0 {
		return nil
	}
	b, err := projection.NewUser(u).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindUser, Err: err}
	}
	p.Set(ctx, keyID(keyUser, u.ID), b, c.cfg.Users.TTL)
	p.SAdd(ctx, keyUsers, u.ID)
	return nil
}

func (c *Cache) storeUsers(ctx context.Context, p *Pipe, users []model.User) error {
	if !c.cfg.Users.Wanted || len(users) == 0 {
		return nil
	}
	pairs := make([]KV, 0, len(users))
	ids := make([]uint64, 0, len(users))
	for i := range users {
		u := &users[i]
		if u.ID == 0 {
			continue
		}
		b, err := projection.NewUser(u).Marshal()
		if err != nil {
			return &SerializeError{Kind: KindUser, Err: err}
		}
		pairs = append(pairs, KV{Key: keyID(keyUser, u.ID), Value: b})
		ids = append(ids, u.ID)
	}
	p.MSet(ctx, pairs, c.cfg.Users.TTL)
	p.SAdd(ctx, keyUsers, ids...)
	return nil
}

// deleteUser drops the given guild from the user's guild set and, when
// that was the last guild the user was seen in, removes the user record
// itself. The pipe must be empty on entry; deletion needs the
// cardinality reply before it can queue the second phase, so the pipe is
// flushed in between.
func (c *Cache) deleteUser(ctx context.Context, p *Pipe, userID, guildID uint64) error {
	if !c.cfg.Users.Wanted {
		return nil
	}
	guildsKey := keyID(keyUserGuilds, userID)
	p.SRem(ctx, guildsKey, guildID)
	card := p.SCard(ctx, guildsKey)
	if err := p.Flush(ctx); err != nil {
		return err
	}
	if card.Val() == 0 {
		p.Del(ctx, keyID(keyUser, userID), guildsKey)
		p.SRem(ctx, keyUsers, userID)
	}
	return nil
}

func (c *Cache) viewUser(b []byte) (*projection.ArchivedUser, error) {
	if c.cfg.TrustedViews {
		return projection.ViewUserTrusted(b), nil
	}
	au, err := projection.ViewUser(b)
	if err != nil {
		return nil, &UpdateError{Kind: KindUser, Err: err}
	}
	return au, nil
}
