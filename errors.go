package memfacade

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoServers is returned by New when no server is configured.
	ErrNoServers = errors.New("memfacade: no servers configured")

	// ErrNotConnected matches every error reported by a degraded cache.
	ErrNotConnected = errors.New("memfacade: not connected")
)

// ConfigError is a construction-time configuration problem. It is never
// downgraded by Lenient.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("memfacade: invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("memfacade: invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ConnectError reports that none of the configured servers answered the
// connect probe. Causes holds the per-server (or handle creation) failures.
type ConnectError struct {
	Servers []string
	Causes  []error
}

func (e *ConnectError) Error() string {
	msg := fmt.Sprintf("memfacade: unable to establish connection to cache servers [%s]",
		strings.Join(e.Servers, ", "))
	if len(e.Causes) > 0 {
		msg += ": " + errors.Join(e.Causes...).Error()
	}
	return msg
}

func (e *ConnectError) Is(target error) bool { return target == ErrNotConnected }

func (e *ConnectError) Unwrap() []error { return e.Causes }
