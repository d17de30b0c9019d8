package cache

import (
	"context"

	"github.com/swrge/randy/model"
	"github.com/swrge/randy/projection"
)

func (c *Cache) storeCurrentUser(ctx context.Context, p *Pipe, u *model.CurrentUser) error {
	if !c.cfg.CurrentUser.Wanted {
		return nil
	}
	b, err := projection.NewCurrentUser(u).Marshal()
	if err != nil {
		return &SerializeError{Kind: KindCurrentUser, Err: err}
	}
	p.Set(ctx, keyCurrentUser, b, c.cfg.CurrentUser.TTL)
	return nil
}
