package memfacade

import (
	"context"
	"time"

	pr "github.com/unkn0wn-root/memfacade/provider"
)

// Cache is the façade over a pool of cache servers. Values are opaque bytes.
//
// Every method triggers the one-time lazy connect if it has not happened yet.
// On a degraded cache every method returns an error matching ErrNotConnected,
// unless the cache was wrapped with Lenient.
type Cache interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key. ttl 0 uses Options.DefaultTTL.
	// stored is false when the cache did not accept the write.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (stored bool, err error)

	// Purge deletes key. Purging an absent key is not an error.
	Purge(ctx context.Context, key string) error

	// PurgeAll flushes every server in the pool, including keys this Cache
	// never wrote. It is global and irreversible.
	PurgeAll(ctx context.Context) error

	State() State
	Close(ctx context.Context) error
}

// ProviderFunc creates the client handle. It is called at most once, on the
// first operation.
type ProviderFunc func() (pr.Provider, error)

// Options configure a Cache. Only Servers is required.
type Options struct {
	// Required. "host" or "host:port"; port defaults to 11211.
	Servers []string

	DefaultTTL time.Duration // 0 => 1h; NoDefaultTTL => server default
	Lenient    bool          // default false: connection failures are returned to callers
	Namespace  string        // optional key prefix; PurgeAll ignores it
	Logger     Logger        // if nil, NopLogger is used
	Hooks      Hooks         // if nil, NopHooks is used

	// Provider creates the client handle. nil => memcache provider
	// configured with Timeout and MaxIdleConns.
	Provider     ProviderFunc
	Timeout      time.Duration // 0 => 100ms
	MaxIdleConns int           // 0 => 2
}

// New validates opts and returns an unconnected Cache. It fails with a
// *ConfigError when Servers is empty or unparsable, whatever Lenient says.
func New(opts Options) (Cache, error) {
	f, err := newFacade(opts)
	if err != nil {
		return nil, err
	}
	if opts.Lenient {
		return Lenient(f), nil
	}
	return f, nil
}
