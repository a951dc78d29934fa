package memfacade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/memfacade/internal/keys"
	pr "github.com/unkn0wn-root/memfacade/provider"
	"github.com/unkn0wn-root/memfacade/provider/memcache"
)

// ErrClosed is returned by operations on a closed Cache.
var ErrClosed = errors.New("memfacade: cache closed")

type facade struct {
	endpoints   []Endpoint
	servers     []string
	defaultTTL  time.Duration
	ns          string
	log         Logger
	hooks       Hooks
	newProvider ProviderFunc

	// connect-once state. p and connErr are written under mu before state
	// leaves StateUnconnected and are read-only afterwards.
	mu      sync.Mutex
	state   atomic.Int32
	closed  atomic.Bool
	p       pr.Provider
	connErr error
}

var _ Cache = (*facade)(nil)

func newFacade(opts Options) (*facade, error) {
	eps, err := ParseEndpoints(opts.Servers)
	if err != nil {
		return nil, err
	}
	servers := make([]string, len(eps))
	for i, ep := range eps {
		servers[i] = ep.Addr()
	}

	f := &facade{
		endpoints: eps,
		servers:   servers,
		ns:        opts.Namespace,
	}

	// defaults
	f.log = coalesce[Logger](opts.Logger, NopLogger{})
	f.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	f.defaultTTL = coalesce[time.Duration](opts.DefaultTTL, DefaultTTL)
	if f.defaultTTL < 0 {
		f.defaultTTL = 0
	}

	if opts.Provider != nil {
		f.newProvider = opts.Provider
	} else {
		cfg := memcache.Config{
			Timeout:      coalesce[time.Duration](opts.Timeout, defaultTimeout),
			MaxIdleConns: coalesce[int](opts.MaxIdleConns, defaultMaxIdleConns),
		}
		f.newProvider = func() (pr.Provider, error) { return memcache.New(cfg), nil }
	}
	return f, nil
}

func (f *facade) State() State { return State(f.state.Load()) }

func (f *facade) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p, err := f.connect(ctx)
	if err != nil {
		return nil, false, err
	}
	b, ok, err := p.Get(ctx, f.key(key))
	if err != nil {
		f.hooks.OpError("get", err)
		return nil, false, err
	}
	return b, ok, nil
}

func (f *facade) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	p, err := f.connect(ctx)
	if err != nil {
		return false, err
	}
	if err := p.Set(ctx, f.key(key), value, f.ttl(ttl)); err != nil {
		f.hooks.OpError("set", err)
		return false, err
	}
	return true, nil
}

func (f *facade) Purge(ctx context.Context, key string) error {
	p, err := f.connect(ctx)
	if err != nil {
		return err
	}
	if err := p.Del(ctx, f.key(key)); err != nil {
		f.hooks.OpError("purge", err)
		return err
	}
	return nil
}

func (f *facade) PurgeAll(ctx context.Context) error {
	p, err := f.connect(ctx)
	if err != nil {
		return err
	}
	if err := p.Flush(ctx); err != nil {
		f.hooks.OpError("purge_all", err)
		return err
	}
	return nil
}

// Close releases the client handle. The state does not change; later
// operations return ErrClosed.
func (f *facade) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed.Swap(true) {
		return nil
	}
	if f.p != nil {
		return f.p.Close(ctx)
	}
	return nil
}

// connect returns the handle of a connected cache. The dial and probe run at
// most once per facade; concurrent first callers wait on mu and share the outcome.
func (f *facade) connect(ctx context.Context) (pr.Provider, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	if s := f.State(); s != StateUnconnected {
		return f.outcome(s)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed.Load() {
		return nil, ErrClosed
	}
	if s := f.State(); s != StateUnconnected {
		return f.outcome(s)
	}

	f.hooks.ConnectStarted(len(f.endpoints))
	f.log.Debug("connecting to cache servers", Fields{"servers": f.servers})

	p, err := f.newProvider()
	if err != nil {
		f.degrade(nil, &ConnectError{Servers: f.servers, Causes: []error{fmt.Errorf("create client: %w", err)}})
		return nil, f.connErr
	}

	var causes []error
	for _, ep := range f.endpoints {
		if err := p.AddServer(ep.Host, ep.Port); err != nil {
			f.hooks.ServerUnreachable(ep.Addr(), err)
			causes = append(causes, fmt.Errorf("add %s: %w", ep.Addr(), err))
		}
	}

	// The probe outlives a cancelled caller: its outcome is permanent for
	// the instance and is bounded by the transport timeouts.
	st, err := p.Stats(context.WithoutCancel(ctx))
	if err != nil {
		causes = append(causes, fmt.Errorf("stats: %w", err))
	}
	for _, s := range st {
		if !s.Alive {
			f.hooks.ServerUnreachable(s.Addr, s.Err)
			if s.Err != nil {
				causes = append(causes, fmt.Errorf("%s: %w", s.Addr, s.Err))
			}
		}
	}

	alive := pr.Alive(st)
	if alive == 0 {
		f.degrade(p, &ConnectError{Servers: f.servers, Causes: causes})
		return nil, f.connErr
	}

	f.p = p
	f.state.Store(int32(StateConnected))
	f.hooks.Connected(alive, len(f.endpoints))
	f.log.Debug("connected to cache servers", Fields{"alive": alive, "total": len(f.endpoints)})
	return p, nil
}

// degrade records the failed attempt. Must hold mu.
func (f *facade) degrade(p pr.Provider, err *ConnectError) {
	f.p = p
	f.connErr = err
	f.state.Store(int32(StateDegraded))
	f.log.Error("unable to establish connection to cache servers", Fields{
		"servers": f.servers,
		"err":     err,
	})
	f.hooks.Degraded(len(f.endpoints), err)
}

func (f *facade) outcome(s State) (pr.Provider, error) {
	if s == StateConnected {
		return f.p, nil
	}
	return nil, f.connErr
}

func (f *facade) ttl(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return f.defaultTTL
}

func (f *facade) key(k string) string { return keys.Prefixed(f.ns, k) }
