package projection

import (
	"github.com/swrge/randy/archive"
	"github.com/swrge/randy/model"
)

// Guild is the cached projection of a guild. Sub-entities are cached under
// their own kinds; only scalar guild state is retained here.
type Guild struct {
	ID                          uint64
	OwnerID                     uint64
	SystemChannelFlags          uint64
	AfkTimeout                  uint16
	DefaultMessageNotifications uint8
	ExplicitContentFilter       uint8
	MfaLevel                    uint8
	NSFWLevel                   uint8
	PremiumTier                 uint8
	VerificationLevel           uint8
	Name                        string
}

const guildHeaderLen = 8 + 8 + 8 + 2 + 6

// NewGuild extracts the projected fields from a guild payload.
func NewGuild(g *model.Guild) *Guild {
	return &Guild{
		ID:                          g.ID,
		OwnerID:                     g.OwnerID,
		SystemChannelFlags:          g.SystemChannelFlags,
		AfkTimeout:                  g.AfkTimeout,
		DefaultMessageNotifications: g.DefaultMessageNotifications,
		ExplicitContentFilter:       g.ExplicitContentFilter,
		MfaLevel:                    g.MfaLevel,
		NSFWLevel:                   g.NSFWLevel,
		PremiumTier:                 g.PremiumTier,
		VerificationLevel:           g.VerificationLevel,
		Name:                        g.Name,
	}
}

func (g *Guild) Marshal() ([]byte, error) {
	w := archive.NewWriter(guildHeaderLen + 4 + len(g.Name))
	w.PutU64(g.ID)
	w.PutU64(g.OwnerID)
	w.PutU64(g.SystemChannelFlags)
	w.PutU16(g.AfkTimeout)
	w.PutU8(g.DefaultMessageNotifications)
	w.PutU8(g.ExplicitContentFilter)
	w.PutU8(g.MfaLevel)
	w.PutU8(g.NSFWLevel)
	w.PutU8(g.PremiumTier)
	w.PutU8(g.VerificationLevel)
	w.PutString(g.Name)
	return w.Bytes(), nil
}

// ApplyUpdate folds a guild-update payload into the projection.
func (g *Guild) ApplyUpdate(u *model.PartialGuild) {
	g.OwnerID = u.OwnerID
	g.SystemChannelFlags = u.SystemChannelFlags
	g.AfkTimeout = u.AfkTimeout
	g.DefaultMessageNotifications = u.DefaultMessageNotifications
	g.ExplicitContentFilter = u.ExplicitContentFilter
	g.MfaLevel = u.MfaLevel
	g.NSFWLevel = u.NSFWLevel
	g.PremiumTier = u.PremiumTier
	g.VerificationLevel = u.VerificationLevel
	g.Name = u.Name
}

// ArchivedGuild is a zero-copy view over an encoded guild record.
type ArchivedGuild struct {
	v archive.View
}

func ViewGuild(b []byte) (*ArchivedGuild, error) {
	if err := archive.Validate(b).Fixed(guildHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedGuild{v: archive.NewView(b)}, nil
}

func ViewGuildTrusted(b []byte) *ArchivedGuild {
	return &ArchivedGuild{v: archive.NewView(b)}
}

func (a *ArchivedGuild) Bytes() []byte { return a.v.Bytes() }

func (a *ArchivedGuild) ID() uint64                         { return a.v.U64At(0) }
func (a *ArchivedGuild) OwnerID() uint64                    { return a.v.U64At(8) }
func (a *ArchivedGuild) SystemChannelFlags() uint64         { return a.v.U64At(16) }
func (a *ArchivedGuild) AfkTimeout() uint16                 { return a.v.U16At(24) }
func (a *ArchivedGuild) DefaultMessageNotifications() uint8 { return a.v.U8At(26) }
func (a *ArchivedGuild) ExplicitContentFilter() uint8       { return a.v.U8At(27) }
func (a *ArchivedGuild) MfaLevel() uint8                    { return a.v.U8At(28) }
func (a *ArchivedGuild) NSFWLevel() uint8                   { return a.v.U8At(29) }
func (a *ArchivedGuild) PremiumTier() uint8                 { return a.v.U8At(30) }
func (a *ArchivedGuild) VerificationLevel() uint8           { return a.v.U8At(31) }

func (a *ArchivedGuild) Name() string {
	s, _ := a.v.StringAt(guildHeaderLen)
	return s
}

// PatchUpdate applies a guild-update payload in place when the name's byte
// length is unchanged. Returns false when the record must be re-encoded.
func (a *ArchivedGuild) PatchUpdate(u *model.PartialGuild) bool {
	if u.Name != a.Name() {
		return false
	}
	a.v.SetU64At(8, u.OwnerID)
	a.v.SetU64At(16, u.SystemChannelFlags)
	a.v.SetU16At(24, u.AfkTimeout)
	a.v.SetU8At(26, u.DefaultMessageNotifications)
	a.v.SetU8At(27, u.ExplicitContentFilter)
	a.v.SetU8At(28, u.MfaLevel)
	a.v.SetU8At(29, u.NSFWLevel)
	a.v.SetU8At(30, u.PremiumTier)
	a.v.SetU8At(31, u.VerificationLevel)
	return true
}

func (a *ArchivedGuild) Deserialize() *Guild {
	return &Guild{
		ID:                          a.ID(),
		OwnerID:                     a.OwnerID(),
		SystemChannelFlags:          a.SystemChannelFlags(),
		AfkTimeout:                  a.AfkTimeout(),
		DefaultMessageNotifications: a.DefaultMessageNotifications(),
		ExplicitContentFilter:       a.ExplicitContentFilter(),
		MfaLevel:                    a.MfaLevel(),
		NSFWLevel:                   a.NSFWLevel(),
		PremiumTier:                 a.PremiumTier(),
		VerificationLevel:           a.VerificationLevel(),
		Name:                        a.Name(),
	}
}
