package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

// storeVoiceState tracks a voice connection. A state with no channel means
// the user disconnected, which removes the record instead.
func (c *Cache) storeVoiceState(ctx context.Context, p *Pipe, v *model.VoiceState) error {
	if !c.cfg.VoiceStates.Wanted {
		return nil
	}
	if v.ChannelID == 0 {
		c.deleteVoiceState(ctx, p, v.GuildID, v.UserID)
		return nil
	}
	b, err := projection.NewVoiceState(v).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindVoiceState, Err: err}
	}
	p.Set(ctx, keyGuildID(keyVoiceState, v.GuildID, v.UserID), b, c.cfg.VoiceStates.TTL)
	p.SAdd(ctx, keyID(keyGuildVoice, v.GuildID), v.UserID)
	return nil
}

func (c *Cache) storeVoiceStates(ctx context.Context, p *Pipe, guildID uint64, states []model.VoiceState) error {
	for i := range states {
		v := states[i]
		if v.GuildID == 0 {
			v.GuildID = guildID
		}
		if err := c.storeVoiceState(ctx, p, &v); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) deleteVoiceState(ctx context.Context, p *Pipe, guildID, userID uint64) {
	if !c.cfg.VoiceStates.Wanted {
		return
	}
	p.Del(ctx, keyGuildID(keyVoiceState, guildID, userID))
	p.SRem(ctx, keyID(keyGuildVoice, guildID), userID)
}
