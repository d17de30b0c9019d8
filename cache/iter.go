package cache

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/swrge/randy/projection"
)

// Collection readers list a set's ids and fetch every record in one MGET.
// Records that vanish between the two steps are skipped, so a result may
// be shorter than the id set.

func (c *Cache) Channels(ctx context.Context) ([]*projection.ArchivedChannel, error) {
	return collect(ctx, c, keyChannels, keyChannel, c.viewChannel)
}

func (c *Cache) Guilds(ctx context.Context) ([]*projection.ArchivedGuild, error) {
	return collect(ctx, c, keyGuilds, keyGuild, c.viewGuild)
}

func (c *Cache) Users(ctx context.Context) ([]*projection.ArchivedUser, error) {
	return collect(ctx, c, keyUsers, keyUser, c.viewUser)
}

func (c *Cache) Roles(ctx context.Context) ([]*projection.ArchivedRole, error) {
	return collect(ctx, c, keyRoles, keyRole, func(b []byte) (*projection.ArchivedRole, error) {
		if c.cfg.TrustedViews {
			return projection.ViewRoleTrusted(b), nil
		}
		ar, err := projection.ViewRole(b)
		if err != nil {
			return nil, &UpdateError{Kind: KindRole, Err: err}
		}
		return ar, nil
	})
}

func (c *Cache) GuildMembers(ctx context.Context, guildID uint64) ([]*projection.ArchivedMember, error) {
	ids, err := c.GuildMemberIDs(ctx, guildID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyGuildID(keyMember, guildID, id)
	}
	return viewAll(ctx, c, keys, c.viewMember)
}

func (c *Cache) GuildPresences(ctx context.Context, guildID uint64) ([]*projection.ArchivedPresence, error) {
	ids, err := c.GuildPresenceIDs(ctx, guildID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyGuildID(keyPresence, guildID, id)
	}
	return viewAll(ctx, c, keys, func(b []byte) (*projection.ArchivedPresence, error) {
		if c.cfg.TrustedViews {
			return projection.ViewPresenceTrusted(b), nil
		}
		ap, err := projection.ViewPresence(b)
		if err != nil {
			return nil, &UpdateError{Kind: KindPresence, Err: err}
		}
		return ap, nil
	})
}

func (c *Cache) GuildVoiceStates(ctx context.Context, guildID uint64) ([]*projection.ArchivedVoiceState, error) {
	ids, err := c.GuildVoiceStateIDs(ctx, guildID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyGuildID(keyVoiceState, guildID, id)
	}
	return viewAll(ctx, c, keys, func(b []byte) (*projection.ArchivedVoiceState, error) {
		if c.cfg.TrustedViews {
			return projection.ViewVoiceStateTrusted(b), nil
		}
		av, err := projection.ViewVoiceState(b)
		if err != nil {
			return nil, &UpdateError{Kind: KindVoiceState, Err: err}
		}
		return av, nil
	})
}

// ChannelMessages reads a channel's cached messages newest first. limit
// caps the result; 0 means all.
func (c *Cache) ChannelMessages(ctx context.Context, channelID uint64, limit int64) ([]*projection.ArchivedMessage, error) {
	ids, err := c.ChannelMessageIDs(ctx, channelID, limit)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyID(keyMessage, id)
	}
	return viewAll(ctx, c, keys, c.viewMessage)
}

// By-id readers return one slot per requested id, nil where the record
// is not cached, so callers can zip results back to their input.

func (c *Cache) ChannelsByIDs(ctx context.Context, ids []uint64) ([]*projection.ArchivedChannel, error) {
	return viewSparse(ctx, c, idKeys(keyChannel, ids), c.viewChannel)
}

func (c *Cache) GuildsByIDs(ctx context.Context, ids []uint64) ([]*projection.ArchivedGuild, error) {
	return viewSparse(ctx, c, idKeys(keyGuild, ids), c.viewGuild)
}

func (c *Cache) MessagesByIDs(ctx context.Context, ids []uint64) ([]*projection.ArchivedMessage, error) {
	return viewSparse(ctx, c, idKeys(keyMessage, ids), c.viewMessage)
}

func (c *Cache) UsersByIDs(ctx context.Context, ids []uint64) ([]*projection.ArchivedUser, error) {
	return viewSparse(ctx, c, idKeys(keyUser, ids), c.viewUser)
}

func (c *Cache) GuildMembersByIDs(ctx context.Context, guildID uint64, ids []uint64) ([]*projection.ArchivedMember, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyGuildID(keyMember, guildID, id)
	}
	return viewSparse(ctx, c, keys, c.viewMember)
}

func idKeys(prefix string, ids []uint64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyID(prefix, id)
	}
	return keys
}

func collect[T any](ctx context.Context, c *Cache, setKey, prefix string, view func([]byte) (*T, error)) ([]*T, error) {
	ids, err := c.memberIDs(ctx, setKey)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyID(prefix, id)
	}
	return viewAll(ctx, c, keys, view)
}

func viewAll[T any](ctx context.Context, c *Cache, keys []string, view func([]byte) (*T, error)) ([]*T, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "cache: bulk read")
	}
	if len(vals) != len(keys) {
		return nil, errors.Wrapf(ErrInvalidResponse, "bulk read returned %d values for %d keys", len(vals), len(keys))
	}
	out := make([]*T, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		rec, err := view([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func viewSparse[T any](ctx context.Context, c *Cache, keys []string, view func([]byte) (*T, error)) ([]*T, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "cache: bulk read")
	}
	if len(vals) != len(keys) {
		return nil, errors.Wrapf(ErrInvalidResponse, "bulk read returned %d values for %d keys", len(vals), len(keys))
	}
	out := make([]*T, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		rec, err := view([]byte(s))
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}
