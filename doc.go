// Package memfacade is a lazily connecting façade over a pool of cache servers
// (memcached by default).
//
// Nothing is dialed at construction. The first operation creates the client
// handle, registers every configured server and probes the pool once:
//
//   - at least one server answers: the cache is Connected and every call is
//     forwarded to the client.
//   - no server answers: the cache is Degraded for the rest of its life. The
//     failure is logged once and never retried.
//
// A degraded cache reports ErrNotConnected (as a *ConnectError). Wrap it with
// Lenient, or set Options.Lenient, to have it behave as a permanently empty
// cache instead: Get misses, Set/Purge/PurgeAll are silent no-ops.
//
// Components:
//   - provider.Provider: the client handle (memcache, redis, ristretto, bigcache).
//   - codec.Codec[V]: (de)serializes V <-> []byte for Typed[V].
//   - Hooks: connection and operation events (slog, async, prometheus sinks).
//
// Usage:
//
//	c, err := memfacade.New(memfacade.Options{
//	    Servers:    []string{"10.0.0.1", "10.0.0.2:11212"},
//	    DefaultTTL: time.Hour,
//	    Logger:     zaplog.ZapLogger{L: zl},
//	})
//	v, ok, err := c.Get(ctx, "user:42")
//
// PurgeAll flushes every server in the pool. It is not scoped to this cache's
// keys or namespace.
package memfacade
