package cache

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// EntityKind names a cached entity category in errors and metrics.
type EntityKind uint8

const (
	KindChannel EntityKind = iota
	KindCurrentUser
	KindEmoji
	KindGuild
	KindIntegration
	KindMember
	KindMessage
	KindPresence
	KindRole
	KindScheduledEvent
	KindStageInstance
	KindSticker
	KindUser
	KindVoiceState
)

func (k EntityKind) String() string {
	switch k {
	case KindChannel:
		return "channel"
	case KindCurrentUser:
		return "current_user"
	case KindEmoji:
		return "emoji"
	case KindGuild:
		return "guild"
	case KindIntegration:
		return "integration"
	case KindMember:
		return "member"
	case KindMessage:
		return "message"
	case KindPresence:
		return "presence"
	case KindRole:
		return "role"
	case KindScheduledEvent:
		return "scheduled_event"
	case KindStageInstance:
		return "stage_instance"
	case KindSticker:
		return "sticker"
	case KindUser:
		return "user"
	case KindVoiceState:
		return "voice_state"
	default:
		return fmt.Sprintf("entity_kind(%d)", uint8(k))
	}
}

// ErrInvalidResponse reports a reply from the store that violates the
// cache's own key and value conventions: a non-numeric set member, a
// malformed meta record, or a multi-read whose arity does not match the
// request.
var ErrInvalidResponse = errors.New("cache: invalid response from store")

// SerializeError wraps a failure to encode an entity into its archived
// form before writing it.
type SerializeError struct {
	Kind EntityKind
	Err  error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("cache: serializing %s: %v", e.Kind, e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }

// UpdateError wraps a failure to decode or re-encode a stored entity
// while applying a partial update to it.
type UpdateError struct {
	Kind EntityKind
	Err  error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("cache: updating stored %s: %v", e.Kind, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// MetaError wraps a failure to read or decode a companion meta record
// during expiration handling.
type MetaError struct {
	Kind EntityKind
	Err  error
}

func (e *MetaError) Error() string {
	return fmt.Sprintf("cache: meta record for %s: %v", e.Kind, e.Err)
}

func (e *MetaError) Unwrap() error { return e.Err }

// ExpireError wraps a failure to clean up after an expired key.
type ExpireError struct {
	Key string
	Err error
}

func (e *ExpireError) Error() string {
	return fmt.Sprintf("cache: handling expiration of %s: %v", e.Key, e.Err)
}

func (e *ExpireError) Unwrap() error { return e.Err }
