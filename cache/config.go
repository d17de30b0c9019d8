package cache

import (
	"time"

	"go.uber.org/zap"
)

// EntityOpts selects whether a kind is cached at all and how long its
// records live. A zero TTL means records persist until an event deletes
// them.
type EntityOpts struct {
	Wanted bool
	TTL    time.Duration
}

// Config selects, per entity kind, whether the cache tracks it and with
// what expiry. Kinds that are not wanted are skipped entirely: no value
// keys, no index membership, no meta records.
//
// Note that kinds interact: caching members without users still maintains
// guild member id sets, and caching users without members still tracks
// which guilds a user is seen in so the last removal can drop the user.
type Config struct {
	Channels        EntityOpts
	CurrentUser     EntityOpts
	Emojis          EntityOpts
	Guilds          EntityOpts
	Integrations    EntityOpts
	Members         EntityOpts
	Messages        EntityOpts
	Presences       EntityOpts
	Roles           EntityOpts
	ScheduledEvents EntityOpts
	StageInstances  EntityOpts
	Stickers        EntityOpts
	Users           EntityOpts
	VoiceStates     EntityOpts

	// TrustedViews skips structural validation when overlaying stored
	// bytes. Only enable it when nothing but this process writes to the
	// backing keyspace.
	TrustedViews bool

	Logger *zap.Logger
}

// DefaultConfig caches every kind with no expiry and validates stored
// bytes on read.
func DefaultConfig() Config {
	all := EntityOpts{Wanted: true}
	return Config{
		Channels:        all,
		CurrentUser:     all,
		Emojis:          all,
		Guilds:          all,
		Integrations:    all,
		Members:         all,
		Messages:        all,
		Presences:       all,
		Roles:           all,
		ScheduledEvents: all,
		StageInstances:  all,
		Stickers:        all,
		Users:           all,
		VoiceStates:     all,
	}
}
