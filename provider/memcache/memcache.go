// Package memcache is the default memfacade provider, backed by
// bradfitz/gomemcache. Keys are spread over the registered servers by the
// client's consistent hashing of the server list.
package memcache

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	gm "github.com/bradfitz/gomemcache/memcache"
	"golang.org/x/sync/errgroup"

	pr "github.com/unkn0wn-root/memfacade/provider"
)

// memcached treats expirations above 30 days as absolute unix timestamps.
const maxRelativeTTL = 30 * 24 * time.Hour

var ErrNoServers = errors.New("memcache provider: no servers registered")

type Config struct {
	Timeout      time.Duration // per socket read/write; 0 => gomemcache default
	MaxIdleConns int           // per server; 0 => gomemcache default
	ProbeLimit   int           // concurrent pings in Stats; 0 => all at once
}

type Memcache struct {
	cfg Config

	mu    sync.Mutex
	addrs []string
	sl    gm.ServerList
	c     *gm.Client
}

var _ pr.Provider = (*Memcache)(nil)

func New(cfg Config) *Memcache {
	m := &Memcache{cfg: cfg}
	m.c = gm.NewFromSelector(&m.sl)
	m.c.Timeout = cfg.Timeout
	m.c.MaxIdleConns = cfg.MaxIdleConns
	return m
}

func (m *Memcache) AddServer(host string, port int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	next := append(append([]string(nil), m.addrs...), addr)
	if err := m.sl.SetServers(next...); err != nil {
		return err
	}
	m.addrs = next
	return nil
}

// Stats pings every registered server on its own connection so one dead
// server does not hide the others.
func (m *Memcache) Stats(ctx context.Context) ([]pr.ServerStatus, error) {
	m.mu.Lock()
	addrs := append([]string(nil), m.addrs...)
	m.mu.Unlock()
	if len(addrs) == 0 {
		return nil, ErrNoServers
	}

	out := make([]pr.ServerStatus, len(addrs))
	g, gctx := errgroup.WithContext(ctx)
	if m.cfg.ProbeLimit > 0 {
		g.SetLimit(m.cfg.ProbeLimit)
	}
	for i, addr := range addrs {
		g.Go(func() error {
			out[i] = pr.ServerStatus{Addr: addr}
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			pc := gm.New(addr)
			defer pc.Close()
			pc.Timeout = m.cfg.Timeout
			pc.MaxIdleConns = 1
			if err := pc.Ping(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Alive = true
			return nil
		})
	}
	_ = g.Wait() // workers record failures in out
	return out, nil
}

func (m *Memcache) Get(_ context.Context, key string) ([]byte, bool, error) {
	it, err := m.c.Get(key)
	if errors.Is(err, gm.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return it.Value, true, nil
}

func (m *Memcache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return m.c.Set(&gm.Item{Key: key, Value: value, Expiration: Expiration(ttl, time.Now())})
}

func (m *Memcache) Del(_ context.Context, key string) error {
	err := m.c.Delete(key)
	if errors.Is(err, gm.ErrCacheMiss) {
		return nil
	}
	return err
}

func (m *Memcache) Flush(_ context.Context) error {
	return m.c.FlushAll()
}

// Close drops the pooled idle connections. Operations after Close dial again.
func (m *Memcache) Close(context.Context) error { return m.c.Close() }

// Expiration converts ttl to memcached's exptime field. ttl <= 0 means no
// expiry. Durations over 30 days become an absolute unix time from now.
// Sub-second durations round up to one second.
func Expiration(ttl time.Duration, now time.Time) int32 {
	if ttl <= 0 {
		return 0
	}
	if ttl > maxRelativeTTL {
		return int32(now.Add(ttl).Unix())
	}
	secs := int32((ttl + time.Second - 1) / time.Second)
	return secs
}
