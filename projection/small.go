package projection

import (
	"github.com/swrge/randy/archive"
	"github.com/swrge/randy/model"
)

// Presence is the cached projection of a guild presence. Fixed shape, so the
// whole record is patchable in place.
type Presence struct {
	UserID  uint64
	GuildID uint64
	Status  uint8
}

const presenceLen = 8 + 8 + 1

func NewPresence(p *model.Presence) *Presence {
	return &Presence{UserID: p.UserID, GuildID: p.GuildID, Status: p.Status}
}

func (p *Presence) Marshal() ([]byte, error) {
	w := archive.NewWriter(presenceLen)
	w.PutU64(p.UserID)
	w.PutU64(p.GuildID)
	w.PutU8(p.Status)
	return w.Bytes(), nil
}

type ArchivedPresence struct {
	v archive.View
}

func ViewPresence(b []byte) (*ArchivedPresence, error) {
	if err := archive.Validate(b).Fixed(presenceLen).Done(); err != nil {
		return nil, err
	}
	return &ArchivedPresence{v: archive.NewView(b)}, nil
}

func ViewPresenceTrusted(b []byte) *ArchivedPresence {
	return &ArchivedPresence{v: archive.NewView(b)}
}

func (a *ArchivedPresence) Bytes() []byte   { return a.v.Bytes() }
func (a *ArchivedPresence) UserID() uint64  { return a.v.U64At(0) }
func (a *ArchivedPresence) GuildID() uint64 { return a.v.U64At(8) }
func (a *ArchivedPresence) Status() uint8   { return a.v.U8At(16) }

func (a *ArchivedPresence) SetStatus(v uint8) { a.v.SetU8At(16, v) }

func (a *ArchivedPresence) Deserialize() *Presence {
	return &Presence{UserID: a.UserID(), GuildID: a.GuildID(), Status: a.Status()}
}

// Emoji is the cached projection of a custom emoji.
type Emoji struct {
	ID       uint64
	Animated bool
	Managed  bool
	Name     string
}

const emojiHeaderLen = 8 + 2

func NewEmoji(e *model.Emoji) *Emoji {
	return &Emoji{ID: e.ID, Animated: e.Animated, Managed: e.Managed, Name: e.Name}
}

func (e *Emoji) Marshal() ([]byte, error) {
	w := archive.NewWriter(emojiHeaderLen + 4 + len(e.Name))
	w.PutU64(e.ID)
	w.PutBool(e.Animated)
	w.PutBool(e.Managed)
	w.PutString(e.Name)
	return w.Bytes(), nil
}

type ArchivedEmoji struct {
	v archive.View
}

func ViewEmoji(b []byte) (*ArchivedEmoji, error) {
	if err := archive.Validate(b).Fixed(emojiHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedEmoji{v: archive.NewView(b)}, nil
}

func ViewEmojiTrusted(b []byte) *ArchivedEmoji {
	return &ArchivedEmoji{v: archive.NewView(b)}
}

func (a *ArchivedEmoji) Bytes() []byte  { return a.v.Bytes() }
func (a *ArchivedEmoji) ID() uint64     { return a.v.U64At(0) }
func (a *ArchivedEmoji) Animated() bool { return a.v.BoolAt(8) }
func (a *ArchivedEmoji) Managed() bool  { return a.v.BoolAt(9) }

func (a *ArchivedEmoji) Name() string {
	s, _ := a.v.StringAt(emojiHeaderLen)
	return s
}

func (a *ArchivedEmoji) Deserialize() *Emoji {
	return &Emoji{ID: a.ID(), Animated: a.Animated(), Managed: a.Managed(), Name: a.Name()}
}

// Sticker is the cached projection of a custom sticker.
type Sticker struct {
	ID          uint64
	GuildID     uint64
	FormatType  uint8
	Name        string
	Description string
}

const stickerHeaderLen = 8 + 8 + 1

func NewSticker(s *model.Sticker) *Sticker {
	return &Sticker{
		ID:          s.ID,
		GuildID:     s.GuildID,
		FormatType:  s.FormatType,
		Name:        s.Name,
		Description: s.Description,
	}
}

func (s *Sticker) Marshal() ([]byte, error) {
	w := archive.NewWriter(stickerHeaderLen + 8 + len(s.Name) + len(s.Description))
	w.PutU64(s.ID)
	w.PutU64(s.GuildID)
	w.PutU8(s.FormatType)
	w.PutString(s.Name)
	w.PutString(s.Description)
	return w.Bytes(), nil
}

type ArchivedSticker struct {
	v archive.View
}

func ViewSticker(b []byte) (*ArchivedSticker, error) {
	if err := archive.Validate(b).Fixed(stickerHeaderLen).String().String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedSticker{v: archive.NewView(b)}, nil
}

func ViewStickerTrusted(b []byte) *ArchivedSticker {
	return &ArchivedSticker{v: archive.NewView(b)}
}

func (a *ArchivedSticker) Bytes() []byte      { return a.v.Bytes() }
func (a *ArchivedSticker) ID() uint64         { return a.v.U64At(0) }
func (a *ArchivedSticker) GuildID() uint64    { return a.v.U64At(8) }
func (a *ArchivedSticker) FormatType() uint8  { return a.v.U8At(16) }

func (a *ArchivedSticker) Name() string {
	s, _ := a.v.StringAt(stickerHeaderLen)
	return s
}

func (a *ArchivedSticker) Description() string {
	_, next := a.v.StringAt(stickerHeaderLen)
	s, _ := a.v.StringAt(next)
	return s
}

func (a *ArchivedSticker) Deserialize() *Sticker {
	return &Sticker{
		ID:          a.ID(),
		GuildID:     a.GuildID(),
		FormatType:  a.FormatType(),
		Name:        a.Name(),
		Description: a.Description(),
	}
}

// Integration is the cached projection of a guild integration.
type Integration struct {
	ID      uint64
	GuildID uint64
	UserID  uint64
	Enabled bool
	Name    string
	Kind    string
}

const integrationHeaderLen = 8 + 8 + 8 + 1

func NewIntegration(i *model.Integration) *Integration {
	return &Integration{
		ID:      i.ID,
		GuildID: i.GuildID,
		UserID:  i.UserID,
		Enabled: i.Enabled,
		Name:    i.Name,
		Kind:    i.Kind,
	}
}

func (i *Integration) Marshal() ([]byte, error) {
	w := archive.NewWriter(integrationHeaderLen + 8 + len(i.Name) + len(i.Kind))
	w.PutU64(i.ID)
	w.PutU64(i.GuildID)
	w.PutU64(i.UserID)
	w.PutBool(i.Enabled)
	w.PutString(i.Name)
	w.PutString(i.Kind)
	return w.Bytes(), nil
}

type ArchivedIntegration struct {
	v archive.View
}

func ViewIntegration(b []byte) (*ArchivedIntegration, error) {
	if err := archive.Validate(b).Fixed(integrationHeaderLen).String().String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedIntegration{v: archive.NewView(b)}, nil
}

func ViewIntegrationTrusted(b []byte) *ArchivedIntegration {
	return &ArchivedIntegration{v: archive.NewView(b)}
}

func (a *ArchivedIntegration) Bytes() []byte   { return a.v.Bytes() }
func (a *ArchivedIntegration) ID() uint64      { return a.v.U64At(0) }
func (a *ArchivedIntegration) GuildID() uint64 { return a.v.U64At(8) }
func (a *ArchivedIntegration) UserID() uint64  { return a.v.U64At(16) }
func (a *ArchivedIntegration) Enabled() bool   { return a.v.BoolAt(24) }

func (a *ArchivedIntegration) Name() string {
	s, _ := a.v.StringAt(integrationHeaderLen)
	return s
}

func (a *ArchivedIntegration) Kind() string {
	_, next := a.v.StringAt(integrationHeaderLen)
	s, _ := a.v.StringAt(next)
	return s
}

func (a *ArchivedIntegration) Deserialize() *Integration {
	return &Integration{
		ID:      a.ID(),
		GuildID: a.GuildID(),
		UserID:  a.UserID(),
		Enabled: a.Enabled(),
		Name:    a.Name(),
		Kind:    a.Kind(),
	}
}

// StageInstance is the cached projection of a live stage.
type StageInstance struct {
	ID        uint64
	GuildID   uint64
	ChannelID uint64
	Topic     string
}

const stageInstanceHeaderLen = 8 + 8 + 8

func NewStageInstance(s *model.StageInstance) *StageInstance {
	return &StageInstance{ID: s.ID, GuildID: s.GuildID, ChannelID: s.ChannelID, Topic: s.Topic}
}

func (s *StageInstance) Marshal() ([]byte, error) {
	w := archive.NewWriter(stageInstanceHeaderLen + 4 + len(s.Topic))
	w.PutU64(s.ID)
	w.PutU64(s.GuildID)
	w.PutU64(s.ChannelID)
	w.PutString(s.Topic)
	return w.Bytes(), nil
}

type ArchivedStageInstance struct {
	v archive.View
}

func ViewStageInstance(b []byte) (*ArchivedStageInstance, error) {
	if err := archive.Validate(b).Fixed(stageInstanceHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedStageInstance{v: archive.NewView(b)}, nil
}

func ViewStageInstanceTrusted(b []byte) *ArchivedStageInstance {
	return &ArchivedStageInstance{v: archive.NewView(b)}
}

func (a *ArchivedStageInstance) Bytes() []byte     { return a.v.Bytes() }
func (a *ArchivedStageInstance) ID() uint64        { return a.v.U64At(0) }
func (a *ArchivedStageInstance) GuildID() uint64   { return a.v.U64At(8) }
func (a *ArchivedStageInstance) ChannelID() uint64 { return a.v.U64At(16) }

func (a *ArchivedStageInstance) Topic() string {
	s, _ := a.v.StringAt(stageInstanceHeaderLen)
	return s
}

func (a *ArchivedStageInstance) Deserialize() *StageInstance {
	return &StageInstance{ID: a.ID(), GuildID: a.GuildID(), ChannelID: a.ChannelID(), Topic: a.Topic()}
}

// ScheduledEvent is the cached projection of a scheduled guild event.
type ScheduledEvent struct {
	ID        uint64
	GuildID   uint64
	ChannelID uint64
	StartTime int64
	EndTime   int64
	UserCount uint32
	Status    uint8
	Name      string
}

const scheduledEventHeaderLen = 8*5 + 4 + 1

func NewScheduledEvent(e *model.ScheduledEvent) *ScheduledEvent {
	return &ScheduledEvent{
		ID:        e.ID,
		GuildID:   e.GuildID,
		ChannelID: e.ChannelID,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		UserCount: e.UserCount,
		Status:    e.Status,
		Name:      e.Name,
	}
}

func (e *ScheduledEvent) Marshal() ([]byte, error) {
	w := archive.NewWriter(scheduledEventHeaderLen + 4 + len(e.Name))
	w.PutU64(e.ID)
	w.PutU64(e.GuildID)
	w.PutU64(e.ChannelID)
	w.PutI64(e.StartTime)
	w.PutI64(e.EndTime)
	w.PutU32(e.UserCount)
	w.PutU8(e.Status)
	w.PutString(e.Name)
	return w.Bytes(), nil
}

type ArchivedScheduledEvent struct {
	v archive.View
}

func ViewScheduledEvent(b []byte) (*ArchivedScheduledEvent, error) {
	if err := archive.Validate(b).Fixed(scheduledEventHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedScheduledEvent{v: archive.NewView(b)}, nil
}

func ViewScheduledEventTrusted(b []byte) *ArchivedScheduledEvent {
	return &ArchivedScheduledEvent{v: archive.NewView(b)}
}

func (a *ArchivedScheduledEvent) Bytes() []byte     { return a.v.Bytes() }
func (a *ArchivedScheduledEvent) ID() uint64        { return a.v.U64At(0) }
func (a *ArchivedScheduledEvent) GuildID() uint64   { return a.v.U64At(8) }
func (a *ArchivedScheduledEvent) ChannelID() uint64 { return a.v.U64At(16) }
func (a *ArchivedScheduledEvent) StartTime() int64  { return a.v.I64At(24) }
func (a *ArchivedScheduledEvent) EndTime() int64    { return a.v.I64At(32) }
func (a *ArchivedScheduledEvent) UserCount() uint32 { return a.v.U32At(40) }
func (a *ArchivedScheduledEvent) Status() uint8     { return a.v.U8At(44) }

func (a *ArchivedScheduledEvent) Name() string {
	s, _ := a.v.StringAt(scheduledEventHeaderLen)
	return s
}

func (a *ArchivedScheduledEvent) SetStatus(v uint8) { a.v.SetU8At(44, v) }

// AddUsers bumps the subscriber count in place, clamping at zero.
func (a *ArchivedScheduledEvent) AddUsers(delta int32) {
	total := int64(a.UserCount()) + int64(delta)
	if total < 0 {
		total = 0
	}
	a.v.SetU32At(40, uint32(total))
}

func (a *ArchivedScheduledEvent) Deserialize() *ScheduledEvent {
	return &ScheduledEvent{
		ID:        a.ID(),
		GuildID:   a.GuildID(),
		ChannelID: a.ChannelID(),
		StartTime: a.StartTime(),
		EndTime:   a.EndTime(),
		UserCount: a.UserCount(),
		Status:    a.Status(),
		Name:      a.Name(),
	}
}

// VoiceState is the cached projection of a voice connection.
type VoiceState struct {
	ChannelID uint64
	GuildID   uint64
	UserID    uint64
	Deaf      bool
	Mute      bool
	SelfDeaf  bool
	SelfMute  bool
	SessionID string
}

const voiceStateHeaderLen = 8*3 + 4

func NewVoiceState(v *model.VoiceState) *VoiceState {
	return &VoiceState{
		ChannelID: v.ChannelID,
		GuildID:   v.GuildID,
		UserID:    v.UserID,
		Deaf:      v.Deaf,
		Mute:      v.Mute,
		SelfDeaf:  v.SelfDeaf,
		SelfMute:  v.SelfMute,
		SessionID: v.SessionID,
	}
}

func (s *VoiceState) Marshal() ([]byte, error) {
	w := archive.NewWriter(voiceStateHeaderLen + 4 + len(s.SessionID))
	w.PutU64(s.ChannelID)
	w.PutU64(s.GuildID)
	w.PutU64(s.UserID)
	w.PutBool(s.Deaf)
	w.PutBool(s.Mute)
	w.PutBool(s.SelfDeaf)
	w.PutBool(s.SelfMute)
	w.PutString(s.SessionID)
	return w.Bytes(), nil
}

type ArchivedVoiceState struct {
	v archive.View
}

func ViewVoiceState(b []byte) (*ArchivedVoiceState, error) {
	if err := archive.Validate(b).Fixed(voiceStateHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedVoiceState{v: archive.NewView(b)}, nil
}

func ViewVoiceStateTrusted(b []byte) *ArchivedVoiceState {
	return &ArchivedVoiceState{v: archive.NewView(b)}
}

func (a *ArchivedVoiceState) Bytes() []byte     { return a.v.Bytes() }
func (a *ArchivedVoiceState) ChannelID() uint64 { return a.v.U64At(0) }
func (a *ArchivedVoiceState) GuildID() uint64   { return a.v.U64At(8) }
func (a *ArchivedVoiceState) UserID() uint64    { return a.v.U64At(16) }
func (a *ArchivedVoiceState) Deaf() bool        { return a.v.BoolAt(24) }
func (a *ArchivedVoiceState) Mute() bool        { return a.v.BoolAt(25) }
func (a *ArchivedVoiceState) SelfDeaf() bool    { return a.v.BoolAt(26) }
func (a *ArchivedVoiceState) SelfMute() bool    { return a.v.BoolAt(27) }

func (a *ArchivedVoiceState) SessionID() string {
	s, _ := a.v.StringAt(voiceStateHeaderLen)
	return s
}

func (a *ArchivedVoiceState) Deserialize() *VoiceState {
	return &VoiceState{
		ChannelID: a.ChannelID(),
		GuildID:   a.GuildID(),
		UserID:    a.UserID(),
		Deaf:      a.Deaf(),
		Mute:      a.Mute(),
		SelfDeaf:  a.SelfDeaf(),
		SelfMute:  a.SelfMute(),
		SessionID: a.SessionID(),
	}
}

// CurrentUser is the cached projection of the session's own account.
type CurrentUser struct {
	ID            uint64
	PublicFlags   uint64
	Discriminator uint16
	Name          string
}

const currentUserHeaderLen = 8 + 8 + 2

func NewCurrentUser(u *model.CurrentUser) *CurrentUser {
	return &CurrentUser{
		ID:            u.ID,
		PublicFlags:   u.PublicFlags,
		Discriminator: u.Discriminator,
		Name:          u.Name,
	}
}

func (u *CurrentUser) Marshal() ([]byte, error) {
	w := archive.NewWriter(currentUserHeaderLen + 4 + len(u.Name))
	w.PutU64(u.ID)
	w.PutU64(u.PublicFlags)
	w.PutU16(u.Discriminator)
	w.PutString(u.Name)
	return w.Bytes(), nil
}

type ArchivedCurrentUser struct {
	v archive.View
}

func ViewCurrentUser(b []byte) (*ArchivedCurrentUser, error) {
	if err := archive.Validate(b).Fixed(currentUserHeaderLen).String().Done(); err != nil {
		return nil, err
	}
	return &ArchivedCurrentUser{v: archive.NewView(b)}, nil
}

func ViewCurrentUserTrusted(b []byte) *ArchivedCurrentUser {
	return &ArchivedCurrentUser{v: archive.NewView(b)}
}

func (a *ArchivedCurrentUser) Bytes() []byte          { return a.v.Bytes() }
func (a *ArchivedCurrentUser) ID() uint64             { return a.v.U64At(0) }
func (a *ArchivedCurrentUser) PublicFlags() uint64    { return a.v.U64At(8) }
func (a *ArchivedCurrentUser) Discriminator() uint16  { return a.v.U16At(16) }

func (a *ArchivedCurrentUser) Name() string {
	s, _ := a.v.StringAt(currentUserHeaderLen)
	return s
}

func (a *ArchivedCurrentUser) Deserialize() *CurrentUser {
	return &CurrentUser{
		ID:            a.ID(),
		PublicFlags:   a.PublicFlags(),
		Discriminator: a.Discriminator(),
		Name:          a.Name(),
	}
}
