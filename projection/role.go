package projection

import (
	"github.com/swrge/randy/archive"
	"github.com/swrge/randy/model"
)

// Role is the cached projection of a guild role.
type Role struct {
	ID          uint64
	GuildID     uint64
	Permissions uint64
	Color       uint32
	Position    int32
	Hoist       bool
	Managed     bool
	Mentionable bool
	Name        string
}

const roleHeaderLen = 8 + 8 + 8 + 4 + 4 + 3

// NewRole extracts the projected fields from a role payload.
func NewRole(guildID uint64, r *model.Role) *Role {
	return &Role{
		ID:          r.ID,
		GuildID:     guildID,
		Permissions: r.Permissions,
		Color:       r.Color,
		Position:    r.Position,
		Hoist:       r.Hoist,
		Managed:     r.Managed,
		Mentionable: r.Mentionable,
		Name:        r.Name,
	}
}

func (r *Role) Marshal() ([]byte, error) {
	w := archive.NewWriter(roleHeaderLen + 4 + len(r.Name))
	w.PutU64(r.ID)
	w.PutU64(r.GuildID)
	w.PutU64(r.Permissions)
	w.PutU32(r.Color)
	w.PutI32(r.Position)
	w.PutBool(r.Hoist)
	w.PutBool(r.Managed)
	w.PutBool(r.Mentionable)
	w.PutString(r.Name)
	return w.Bytes(), nil
}

// ArchivedRole is a zero-copy view over an encoded role record.
type ArchivedRole struct {
	v archive.View
}

func ViewRole(b []byte) (*ArchivedRole, error) {
	if err := archive.Validate(b).Fixed(roleHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedRole{v: archive.NewView(b)}, nil
}

func ViewRoleTrusted(b []byte) *ArchivedRole {
	return &ArchivedRole{v: archive.NewView(b)}
}

func (a *ArchivedRole) Bytes() []byte { return a.v.Bytes() }

func (a *ArchivedRole) ID() uint64          { return a.v.U64At(0) }
func (a *ArchivedRole) GuildID() uint64     { return a.v.U64At(8) }
func (a *ArchivedRole) Permissions() uint64 { return a.v.U64At(16) }
func (a *ArchivedRole) Color() uint32       { return a.v.U32At(24) }
func (a *ArchivedRole) Position() int32     { return a.v.I32At(28) }
func (a *ArchivedRole) Hoist() bool         { return a.v.BoolAt(32) }
func (a *ArchivedRole) Managed() bool       { return a.v.BoolAt(33) }
func (a *ArchivedRole) Mentionable() bool   { return a.v.BoolAt(34) }

func (a *ArchivedRole) Name() string {
	s, _ := a.v.StringAt(roleHeaderLen)
	return s
}

func (a *ArchivedRole) SetPermissions(v uint64) { a.v.SetU64At(16, v) }
func (a *ArchivedRole) SetPosition(v int32)     { a.v.SetU32At(28, uint32(v)) }

func (a *ArchivedRole) Deserialize() *Role {
	return &Role{
		ID:          a.ID(),
		GuildID:     a.GuildID(),
		Permissions: a.Permissions(),
		Color:       a.Color(),
		Position:    a.Position(),
		Hoist:       a.Hoist(),
		Managed:     a.Managed(),
		Mentionable: a.Mentionable(),
		Name:        a.Name(),
	}
}
