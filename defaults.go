package memfacade

import "time"

const (
	// DefaultPort is used for servers given without an explicit port.
	DefaultPort = 11211

	// DefaultTTL applies to Set calls without a ttl when Options.DefaultTTL is zero.
	DefaultTTL = time.Hour

	// NoDefaultTTL disables the default expiry: Set without a ttl leaves
	// expiry to the server.
	NoDefaultTTL time.Duration = -1

	defaultTimeout      = 100 * time.Millisecond
	defaultMaxIdleConns = 2
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
