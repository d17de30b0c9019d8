package cache

import (
	"context"

	"github.com/swrge/randy/model"
)

// Update applies one gateway event to the cached state. Writes for an
// event are queued on a fresh pipeline and flushed together; events whose
// second half depends on a read flush more than once. Unknown or
// irrelevant payload parts are skipped, never an error.
func (c *Cache) Update(ctx context.Context, event model.Event) error {
	p := c.newPipe()
	if err := c.apply(ctx, p, event); err != nil {
		p.Discard()
		return err
	}
	return p.Flush(ctx)
}

func (c *Cache) apply(ctx context.Context, p *Pipe, event model.Event) error {
	switch ev := event.(type) {
	case model.ChannelCreate:
		return c.storeChannel(ctx, p, &ev.Channel)
	case model.ChannelUpdate:
		return c.storeChannel(ctx, p, &ev.Channel)
	case model.ChannelDelete:
		c.deleteChannel(ctx, p, ev.GuildID, ev.ID)
		return nil
	case model.ChannelPinsUpdate:
		return c.storePinsUpdate(ctx, p, &ev)
	case model.ThreadCreate:
		return c.storeChannel(ctx, p, &ev.Channel)
	case model.ThreadUpdate:
		return c.storeChannel(ctx, p, &ev.Channel)
	case model.ThreadDelete:
		c.deleteChannel(ctx, p, ev.GuildID, ev.ID)
		return nil

	case model.GuildCreate:
		return c.storeGuild(ctx, p, &ev.Guild)
	case model.GuildUpdate:
		return c.storeGuildUpdate(ctx, p, &ev.Guild)
	case model.GuildDelete:
		if ev.Unavailable {
			p.SAdd(ctx, keyUnavailable, ev.ID)
			return nil
		}
		return c.deleteGuild(ctx, p, ev.ID)
	case model.GuildEmojisUpdate:
		return c.syncGuildEmojis(ctx, p, ev.GuildID, ev.Emojis)
	case model.GuildStickersUpdate:
		return c.syncGuildStickers(ctx, p, ev.GuildID, ev.Stickers)

	case model.IntegrationCreate:
		return c.storeIntegration(ctx, p, &ev.Integration)
	case model.IntegrationUpdate:
		return c.storeIntegration(ctx, p, &ev.Integration)
	case model.IntegrationDelete:
		c.deleteIntegration(ctx, p, ev.GuildID, ev.ID)
		return nil

	case model.MemberAdd:
		return c.storeMember(ctx, p, ev.GuildID, &ev.Member)
	case model.MemberUpdate:
		return c.storeMemberUpdate(ctx, p, &ev)
	case model.MemberRemove:
		return c.deleteMember(ctx, p, ev.GuildID, ev.User.ID)
	case model.MemberChunk:
		return c.storeMembers(ctx, p, ev.GuildID, ev.Members)

	case model.MessageCreate:
		return c.storeMessage(ctx, p, &ev.Message)
	case model.MessageUpdate:
		return c.storeMessageUpdate(ctx, p, &ev)
	case model.MessageDelete:
		c.deleteMessage(ctx, p, ev.ChannelID, ev.ID)
		return nil
	case model.MessageDeleteBulk:
		c.deleteMessage(ctx, p, ev.ChannelID, ev.IDs...)
		return nil

	case model.ReactionAdd:
		if ev.Member != nil && ev.GuildID != 0 {
			if err := c.storeMember(ctx, p, ev.GuildID, ev.Member); err != nil {
				return err
			}
		}
		return c.reactionDelta(ctx, p, ev.MessageID, 1)
	case model.ReactionRemove:
		return c.reactionDelta(ctx, p, ev.MessageID, -1)
	case model.ReactionRemoveAll:
		return c.reactionDelta(ctx, p, ev.MessageID, 0)
	case model.ReactionRemoveEmoji:
		// The projection keeps one aggregate count; a per-emoji removal
		// carries no usable delta.
		return nil

	case model.PresenceUpdate:
		return c.storePresence(ctx, p, &ev.Presence)

	case model.RoleCreate:
		return c.storeRole(ctx, p, ev.GuildID, &ev.Role)
	case model.RoleUpdate:
		return c.storeRole(ctx, p, ev.GuildID, &ev.Role)
	case model.RoleDelete:
		c.deleteRole(ctx, p, ev.GuildID, ev.RoleID)
		return nil

	case model.ScheduledEventCreate:
		return c.storeScheduledEvent(ctx, p, &ev.Event)
	case model.ScheduledEventUpdate:
		return c.storeScheduledEvent(ctx, p, &ev.Event)
	case model.ScheduledEventDelete:
		c.deleteScheduledEvent(ctx, p, ev.GuildID, ev.ID)
		return nil
	case model.ScheduledEventUserAdd:
		return c.scheduledEventUsers(ctx, p, ev.EventID, 1)
	case model.ScheduledEventUserRemove:
		return c.scheduledEventUsers(ctx, p, ev.EventID, -1)

	case model.StageInstanceCreate:
		return c.storeStageInstance(ctx, p, &ev.StageInstance)
	case model.StageInstanceUpdate:
		return c.storeStageInstance(ctx, p, &ev.StageInstance)
	case model.StageInstanceDelete:
		c.deleteStageInstance(ctx, p, ev.GuildID, ev.ID)
		return nil

	case model.Ready:
		if len(ev.GuildIDs) > 0 {
			p.SAdd(ctx, keyUnavailable, ev.GuildIDs...)
		}
		return c.storeCurrentUser(ctx, p, &ev.CurrentUser)
	case model.UserUpdate:
		return c.storeCurrentUser(ctx, p, &ev.CurrentUser)

	case model.VoiceStateUpdate:
		return c.storeVoiceState(ctx, p, &ev.VoiceState)
	}
	return nil
}
