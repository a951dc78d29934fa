// Package bigcache is an in-process memfacade provider backed by
// allegro/bigcache. Like the ristretto provider, registered servers are only
// recorded and always reported alive.
package bigcache

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/memfacade/provider"
)

type Provider struct {
	c *bc.BigCache

	mu    sync.Mutex
	addrs []string
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	LifeWindow         time.Duration // expiry for every entry; per-call TTLs are ignored
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Provider, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) AddServer(host string, port int) error {
	p.mu.Lock()
	p.addrs = append(p.addrs, net.JoinHostPort(host, strconv.Itoa(port)))
	p.mu.Unlock()
	return nil
}

func (p *Provider) Stats(context.Context) ([]pr.ServerStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]pr.ServerStatus, len(p.addrs))
	for i, a := range p.addrs {
		out[i] = pr.ServerStatus{Addr: a, Alive: true}
	}
	return out, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set ignores ttl: BigCache only supports the global LifeWindow.
func (p *Provider) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	return p.c.Set(key, value)
}

func (p *Provider) Del(_ context.Context, key string) error {
	err := p.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (p *Provider) Flush(context.Context) error {
	return p.c.Reset()
}

func (p *Provider) Close(context.Context) error {
	return p.c.Close()
}
