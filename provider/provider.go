// Package provider defines the client contract used by memfacade.
//
// A Provider is the handle to a pool of cache servers. memfacade creates one
// lazily, registers every configured server with AddServer, probes the pool
// once with Stats and then forwards reads and writes to it.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation).
package provider

import (
	"context"
	"time"
)

// ServerStatus is the liveness of one registered server.
type ServerStatus struct {
	Addr  string
	Alive bool
	Err   error // set when Alive is false
}

// Provider is a byte store spread over one or more servers.
// Must be safe for concurrent use once AddServer calls are done.
type Provider interface {
	// AddServer registers a server. Registration does not dial.
	AddServer(host string, port int) error

	// Stats probes every registered server. The returned slice is in
	// registration order. err is reserved for failures of the probe itself,
	// not for unreachable servers.
	Stats(ctx context.Context) ([]ServerStatus, error)

	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value. ttl <= 0 means the server's own default (usually no expiry).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key. Removing an absent key is not an error.
	Del(ctx context.Context, key string) error

	// Flush drops every key on every server. This is not scoped to a namespace.
	Flush(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Alive returns the number of alive servers in st.
func Alive(st []ServerStatus) int {
	n := 0
	for _, s := range st {
		if s.Alive {
			n++
		}
	}
	return n
}
