package projection

import (
	"github.com/swrge/randy/archive"
	"github.com/swrge/randy/model"
)

// Channel is the cached projection of a channel.
type Channel struct {
	ID               uint64
	GuildID          uint64
	ParentID         uint64
	LastPinTimestamp int64
	Kind             uint8
	Name             string
}

const channelHeaderLen = 8 + 8 + 8 + 8 + 1

// NewChannel extracts the projected fields from a channel payload.
func NewChannel(c *model.Channel) *Channel {
	return &Channel{
		ID:               c.ID,
		GuildID:          c.GuildID,
		ParentID:         c.ParentID,
		LastPinTimestamp: c.LastPinTimestamp,
		Kind:             c.Kind,
		Name:             c.Name,
	}
}

func (c *Channel) Marshal() ([]byte, error) {
	w := archive.NewWriter(channelHeaderLen + 4 + len(c.Name))
	w.PutU64(c.ID)
	w.PutU64(c.GuildID)
	w.PutU64(c.ParentID)
	w.PutI64(c.LastPinTimestamp)
	w.PutU8(c.Kind)
	w.PutString(c.Name)
	return w.Bytes(), nil
}

// ArchivedChannel is a zero-copy view over an encoded channel record.
type ArchivedChannel struct {
	v archive.View
}

// ViewChannel validates b and overlays it.
func ViewChannel(b []byte) (*ArchivedChannel, error) {
	if err := archive.Validate(b).Fixed(channelHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedChannel{v: archive.NewView(b)}, nil
}

// ViewChannelTrusted overlays b without validation.
func ViewChannelTrusted(b []byte) *ArchivedChannel {
	return &ArchivedChannel{v: archive.NewView(b)}
}

func (a *ArchivedChannel) Bytes() []byte { return a.v.Bytes() }

func (a *ArchivedChannel) ID() uint64               { return a.v.U64At(0) }
func (a *ArchivedChannel) GuildID() uint64          { return a.v.U64At(8) }
func (a *ArchivedChannel) ParentID() uint64         { return a.v.U64At(16) }
func (a *ArchivedChannel) LastPinTimestamp() int64  { return a.v.I64At(24) }
func (a *ArchivedChannel) Kind() uint8              { return a.v.U8At(32) }

func (a *ArchivedChannel) Name() string {
	s, _ := a.v.StringAt(channelHeaderLen)
	return s
}

// SetLastPinTimestamp patches the pin timestamp in place.
func (a *ArchivedChannel) SetLastPinTimestamp(ts int64) { a.v.SetI64At(24, ts) }

// Deserialize decodes the full projection for a mutate-and-reencode cycle.
func (a *ArchivedChannel) Deserialize() *Channel {
	return &Channel{
		ID:               a.ID(),
		GuildID:          a.GuildID(),
		ParentID:         a.ParentID(),
		LastPinTimestamp: a.LastPinTimestamp(),
		Kind:             a.Kind(),
		Name:             a.Name(),
	}
}
