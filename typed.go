package memfacade

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/memfacade/codec"
)

// Typed stores values of type V in a Cache through a Codec.
type Typed[V any] struct {
	cache Cache
	codec c.Codec[V]
	log   Logger
}

// NewTyped wraps cache. logger may be nil.
func NewTyped[V any](cache Cache, codec c.Codec[V], logger Logger) *Typed[V] {
	return &Typed[V]{
		cache: cache,
		codec: codec,
		log:   coalesce[Logger](logger, NopLogger{}),
	}
}

// Get decodes the cached value. An entry that fails to decode is purged and
// reported as a miss.
func (t *Typed[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, ok, err := t.cache.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := t.codec.Decode(raw)
	if err != nil {
		t.log.Warn("dropping undecodable entry", Fields{"key": key, "err": err})
		_ = t.cache.Purge(ctx, key) // self-heal
		return zero, false, nil
	}
	return v, true, nil
}

func (t *Typed[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) (bool, error) {
	raw, err := t.codec.Encode(value)
	if err != nil {
		return false, err
	}
	return t.cache.Set(ctx, key, raw, ttl)
}

func (t *Typed[V]) Purge(ctx context.Context, key string) error { return t.cache.Purge(ctx, key) }

// PurgeAll flushes the whole pool, see Cache.PurgeAll.
func (t *Typed[V]) PurgeAll(ctx context.Context) error { return t.cache.PurgeAll(ctx) }

// Cache returns the wrapped cache.
func (t *Typed[V]) Cache() Cache { return t.cache }
