package cache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/swrge/randy/model"
)

// FreezeSessions stores the gateway sessions of a shard group plus the
// resume URL so a restarted process can resume instead of re-identifying.
// A ttl above zero bounds how stale a frozen session may get before it is
// discarded; resuming against a long-dead session fails upstream anyway.
func (c *Cache) FreezeSessions(ctx context.Context, resumeURL string, sessions map[uint32]model.Session, ttl time.Duration) error {
	if len(sessions) == 0 {
		return nil
	}
	b, err := msgpack.Marshal(sessions)
	if err != nil {
		return errors.Wrap(err, "cache: encoding sessions")
	}
	p := c.newPipe()
	p.Set(ctx, keySessions, b, ttl)
	p.Set(ctx, keyResumeURL, []byte(resumeURL), ttl)
	return p.Flush(ctx)
}

// ThawSessions consumes previously frozen sessions. The stored state is
// deleted on read: a session can only be resumed once, so handing the
// same one to two processes would get both disconnected. Returns
// ("", nil, nil) when nothing is frozen.
func (c *Cache) ThawSessions(ctx context.Context) (string, map[uint32]model.Session, error) {
	b, err := c.client.GetDel(ctx, keySessions).Bytes()
	if err != nil {
		if isNil(err) {
			return "", nil, nil
		}
		return "", nil, errors.Wrap(err, "cache: fetching frozen sessions")
	}
	resumeURL, err := c.client.GetDel(ctx, keyResumeURL).Result()
	if err != nil && !isNil(err) {
		return "", nil, errors.Wrap(err, "cache: fetching resume url")
	}

	var sessions map[uint32]model.Session
	if err := msgpack.Unmarshal(b, &sessions); err != nil {
		return "", nil, errors.Wrap(err, "cache: decoding sessions")
	}
	return resumeURL, sessions, nil
}
