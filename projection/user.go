package projection

import (
	"github.com/swrge/randy/archive"
	"github.com/swrge/randy/model"
)

// User is the cached projection of a platform account.
type User struct {
	ID            uint64
	PublicFlags   uint64
	Discriminator uint16
	Bot           bool
	Name          string
}

const userHeaderLen = 8 + 8 + 2 + 1

// NewUser extracts the projected fields from a user payload.
func NewUser(u *model.User) *User {
	return &User{
		ID:            u.ID,
		PublicFlags:   u.PublicFlags,
		Discriminator: u.Discriminator,
		Bot:           u.Bot,
		Name:          u.Name,
	}
}

func (u *User) Marshal() ([]byte, error) {
	w := archive.NewWriter(userHeaderLen + 4 + len(u.Name))
	w.PutU64(u.ID)
	w.PutU64(u.PublicFlags)
	w.PutU16(u.Discriminator)
	w.PutBool(u.Bot)
	w.PutString(u.Name)
	return w.Bytes(), nil
}

// ApplyPartial folds a partial-user payload into the projection.
func (u *User) ApplyPartial(p *model.PartialUser) {
	u.PublicFlags = p.PublicFlags
	u.Discriminator = p.Discriminator
	u.Name = p.Name
}

// ArchivedUser is a zero-copy view over an encoded user record.
type ArchivedUser struct {
	v archive.View
}

func ViewUser(b []byte) (*ArchivedUser, error) {
	if err := archive.Validate(b).Fixed(userHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedUser{v: archive.NewView(b)}, nil
}

func ViewUserTrusted(b []byte) *ArchivedUser {
	return &ArchivedUser{v: archive.NewView(b)}
}

func (a *ArchivedUser) Bytes() []byte { return a.v.Bytes() }

func (a *ArchivedUser) ID() uint64            { return a.v.U64At(0) }
func (a *ArchivedUser) PublicFlags() uint64   { return a.v.U64At(8) }
func (a *ArchivedUser) Discriminator() uint16 { return a.v.U16At(16) }
func (a *ArchivedUser) Bot() bool             { return a.v.BoolAt(18) }

func (a *ArchivedUser) Name() string {
	s, _ := a.v.StringAt(userHeaderLen)
	return s
}

func (a *ArchivedUser) SetPublicFlags(v uint64)     { a.v.SetU64At(8, v) }
func (a *ArchivedUser) SetDiscriminator(v uint16)   { a.v.SetU16At(16, v) }

func (a *ArchivedUser) Deserialize() *User {
	return &User{
		ID:            a.ID(),
		PublicFlags:   a.PublicFlags(),
		Discriminator: a.Discriminator(),
		Bot:           a.Bot(),
		Name:          a.Name(),
	}
}
