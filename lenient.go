package memfacade

import (
	"context"
	"errors"
	"time"
)

// Lenient wraps c so a degraded cache behaves as a permanently empty one:
// Get misses, Set reports false, Purge and PurgeAll do nothing, and none of
// them return ErrNotConnected. The connect failure is still logged once by c.
//
// Callers cannot tell a miss from an unavailable cache through the wrapper.
// Errors from a connected cache (transport, protocol) pass through.
func Lenient(c Cache) Cache {
	if l, ok := c.(lenient); ok {
		return l
	}
	return lenient{c}
}

type lenient struct{ Cache }

func (l lenient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, ok, err := l.Cache.Get(ctx, key)
	if errors.Is(err, ErrNotConnected) {
		return nil, false, nil
	}
	return b, ok, err
}

func (l lenient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := l.Cache.Set(ctx, key, value, ttl)
	if errors.Is(err, ErrNotConnected) {
		return false, nil
	}
	return ok, err
}

func (l lenient) Purge(ctx context.Context, key string) error {
	return downgrade(l.Cache.Purge(ctx, key))
}

func (l lenient) PurgeAll(ctx context.Context) error {
	return downgrade(l.Cache.PurgeAll(ctx))
}

func downgrade(err error) error {
	if errors.Is(err, ErrNotConnected) {
		return nil
	}
	return err
}
