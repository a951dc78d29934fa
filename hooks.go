package memfacade

// Hooks lightweight callbacks for connection and operation events.
// Implementations MUST be cheap and non-blocking.
type Hooks interface {
	// The lazy connect started for a pool of n servers. Fires at most once per Cache.
	ConnectStarted(servers int)

	// A registered server did not answer the connect probe.
	ServerUnreachable(addr string, err error)

	// The connect probe succeeded; alive of total servers answered.
	Connected(alive, total int)

	// No server answered; the cache is degraded for its lifetime.
	Degraded(total int, err error)

	// A forwarded operation failed after a successful connect.
	// op ∈ {"get", "set", "purge", "purge_all"}
	OpError(op string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ConnectStarted(int)              {}
func (NopHooks) ServerUnreachable(string, error) {}
func (NopHooks) Connected(int, int)              {}
func (NopHooks) Degraded(int, error)             {}
func (NopHooks) OpError(string, error)           {}
