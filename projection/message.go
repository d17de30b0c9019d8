package projection

import (
	"github.com/swrge/randy/archive"
	"github.com/swrge/randy/model"
)

// Message is the cached projection of a chat message. Reactions collapse to
// a running total so reaction events patch a single counter in place.
type Message struct {
	ID              uint64
	ChannelID       uint64
	AuthorID        uint64
	Flags           uint64
	Timestamp       int64
	EditedTimestamp int64
	ReactionCount   uint32
	Kind            uint8
	Pinned          bool
	Content         string
}

const messageHeaderLen = 8*6 + 4 + 1 + 1

// NewMessage extracts the projected fields from a message payload.
func NewMessage(m *model.Message) *Message {
	var reactions uint32
	for _, r := range m.Reactions {
		reactions += r.Count
	}
	return &Message{
		ID:              m.ID,
		ChannelID:       m.ChannelID,
		AuthorID:        m.Author.ID,
		Flags:           m.Flags,
		Timestamp:       m.Timestamp,
		EditedTimestamp: m.EditedTimestamp,
		ReactionCount:   reactions,
		Kind:            m.Kind,
		Pinned:          m.Pinned,
		Content:         m.Content,
	}
}

func (m *Message) Marshal() ([]byte, error) {
	w := archive.NewWriter(messageHeaderLen + 4 + len(m.Content))
	w.PutU64(m.ID)
	w.PutU64(m.ChannelID)
	w.PutU64(m.AuthorID)
	w.PutU64(m.Flags)
	w.PutI64(m.Timestamp)
	w.PutI64(m.EditedTimestamp)
	w.PutU32(m.ReactionCount)
	w.PutU8(m.Kind)
	w.PutBool(m.Pinned)
	w.PutString(m.Content)
	return w.Bytes(), nil
}

// ArchivedMessage is a zero-copy view over an encoded message record.
type ArchivedMessage struct {
	v archive.View
}

func ViewMessage(b []byte) (*ArchivedMessage, error) {
	if err := archive.Validate(b).Fixed(messageHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedMessage{v: archive.NewView(b)}, nil
}

func ViewMessageTrusted(b []byte) *ArchivedMessage {
	return &ArchivedMessage{v: archive.NewView(b)}
}

func (a *ArchivedMessage) Bytes() []byte { return a.v.Bytes() }

func (a *ArchivedMessage) ID() uint64              { return a.v.U64At(0) }
func (a *ArchivedMessage) ChannelID() uint64       { return a.v.U64At(8) }
func (a *ArchivedMessage) AuthorID() uint64        { return a.v.U64At(16) }
func (a *ArchivedMessage) Flags() uint64           { return a.v.U64At(24) }
func (a *ArchivedMessage) Timestamp() int64        { return a.v.I64At(32) }
func (a *ArchivedMessage) EditedTimestamp() int64  { return a.v.I64At(40) }
func (a *ArchivedMessage) ReactionCount() uint32   { return a.v.U32At(48) }
func (a *ArchivedMessage) Kind() uint8             { return a.v.U8At(52) }
func (a *ArchivedMessage) Pinned() bool            { return a.v.BoolAt(53) }

func (a *ArchivedMessage) Content() string {
	s, _ := a.v.StringAt(messageHeaderLen)
	return s
}

func (a *ArchivedMessage) SetFlags(v uint64)          { a.v.SetU64At(24, v) }
func (a *ArchivedMessage) SetTimestamp(v int64)       { a.v.SetI64At(32, v) }
func (a *ArchivedMessage) SetEditedTimestamp(v int64) { a.v.SetI64At(40, v) }
func (a *ArchivedMessage) SetReactionCount(v uint32)  { a.v.SetU32At(48, v) }
func (a *ArchivedMessage) SetKind(v uint8)            { a.v.SetU8At(52, v) }
func (a *ArchivedMessage) SetPinned(v bool)           { a.v.SetBoolAt(53, v) }

// AddReactions bumps the reaction total in place, clamping at zero.
func (a *ArchivedMessage) AddReactions(delta int32) {
	total := int64(a.ReactionCount()) + int64(delta)
	if total < 0 {
		total = 0
	}
	a.SetReactionCount(uint32(total))
}

func (a *ArchivedMessage) Deserialize() *Message {
	return &Message{
		ID:              a.ID(),
		ChannelID:       a.ChannelID(),
		AuthorID:        a.AuthorID(),
		Flags:           a.Flags(),
		Timestamp:       a.Timestamp(),
		EditedTimestamp: a.EditedTimestamp(),
		ReactionCount:   a.ReactionCount(),
		Kind:            a.Kind(),
		Pinned:          a.Pinned(),
		Content:         a.Content(),
	}
}
