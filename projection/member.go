package projection

import (
	"github.com/swrge/randy/archive"
	"github.com/swrge/randy/model"
)

// Member is the cached projection of a guild membership. The user itself is
// cached separately; only the user id is retained here.
type Member struct {
	UserID                     uint64
	GuildID                    uint64
	JoinedAt                   int64
	CommunicationDisabledUntil int64
	Pending                    bool
	Deaf                       bool
	Mute                       bool
	Nick                       string
	RoleIDs                    []uint64
}

const memberHeaderLen = 8 + 8 + 8 + 8 + 3

// NewMember extracts the projected fields from a member payload.
func NewMember(guildID uint64, m *model.Member) *Member {
	return &Member{
		UserID:                     m.User.ID,
		GuildID:                    guildID,
		JoinedAt:                   m.JoinedAt,
		CommunicationDisabledUntil: m.CommunicationDisabledUntil,
		Pending:                    m.Pending,
		Deaf:                       m.Deaf,
		Mute:                       m.Mute,
		Nick:                       m.Nick,
		RoleIDs:                    m.RoleIDs,
	}
}

func (m *Member) Marshal() ([]byte, error) {
	w := archive.NewWriter(memberHeaderLen + 8 + len(m.Nick) + 8*len(m.RoleIDs))
	w.PutU64(m.UserID)
	w.PutU64(m.GuildID)
	w.PutI64(m.JoinedAt)
	w.PutI64(m.CommunicationDisabledUntil)
	w.PutBool(m.Pending)
	w.PutBool(m.Deaf)
	w.PutBool(m.Mute)
	w.PutString(m.Nick)
	w.PutU64Slice(m.RoleIDs)
	return w.Bytes(), nil
}

// ArchivedMember is a zero-copy view over an encoded member record.
type ArchivedMember struct {
	v archive.View
}

func ViewMember(b []byte) (*ArchivedMember, error) {
	if err := archive.Validate(b).Fixed(memberHeaderLen).String().U64Slice().Done(); err != nil {
		return nil, err
	}
	return &ArchivedMember{v: archive.NewView(b)}, nil
}

func ViewMemberTrusted(b []byte) *ArchivedMember {
	return &ArchivedMember{v: archive.NewView(b)}
}

func (a *ArchivedMember) Bytes() []byte { return a.v.Bytes() }

func (a *ArchivedMember) UserID() uint64                     { return a.v.U64At(0) }
func (a *ArchivedMember) GuildID() uint64                    { return a.v.U64At(8) }
func (a *ArchivedMember) JoinedAt() int64                    { return a.v.I64At(16) }
func (a *ArchivedMember) CommunicationDisabledUntil() int64  { return a.v.I64At(24) }
func (a *ArchivedMember) Pending() bool                      { return a.v.BoolAt(32) }
func (a *ArchivedMember) Deaf() bool                         { return a.v.BoolAt(33) }
func (a *ArchivedMember) Mute() bool                         { return a.v.BoolAt(34) }

func (a *ArchivedMember) Nick() string {
	s, _ := a.v.StringAt(memberHeaderLen)
	return s
}

func (a *ArchivedMember) RoleIDs() []uint64 {
	_, next := a.v.StringAt(memberHeaderLen)
	ids, _ := a.v.U64SliceAt(next)
	return ids
}

func (a *ArchivedMember) SetPending(v bool) { a.v.SetBoolAt(32, v) }

func (a *ArchivedMember) SetCommunicationDisabledUntil(ts int64) { a.v.SetI64At(24, ts) }

// PatchUpdate applies a member-update payload in place when neither the nick
// nor the role list changed shape. Returns false when re-encoding is needed.
func (a *ArchivedMember) PatchUpdate(u *model.MemberUpdate) bool {
	if u.Nick != a.Nick() || !sameIDs(u.RoleIDs, a.RoleIDs()) {
		return false
	}
	a.SetPending(u.Pending)
	a.SetCommunicationDisabledUntil(u.CommunicationDisabledUntil)
	return true
}

func (a *ArchivedMember) Deserialize() *Member {
	return &Member{
		UserID:                     a.UserID(),
		GuildID:                    a.GuildID(),
		JoinedAt:                   a.JoinedAt(),
		CommunicationDisabledUntil: a.CommunicationDisabledUntil(),
		Pending:                    a.Pending(),
		Deaf:                       a.Deaf(),
		Mute:                       a.Mute(),
		Nick:                       a.Nick(),
		RoleIDs:                    a.RoleIDs(),
	}
}

func sameIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
