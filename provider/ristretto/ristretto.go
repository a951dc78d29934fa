// Package ristretto is an in-process memfacade provider for development and
// tests. Registered servers are only recorded; the store lives in this
// process and is always reported alive.
package ristretto

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/memfacade/provider"
)

type Provider struct {
	c *rc.Cache

	mu    sync.Mutex
	addrs []string
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // bytes; each entry costs len(value)
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
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
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set waits for the write buffer to drain so a following Get sees the value.
// A write dropped by the admission policy is not an error.
func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	p.c.SetWithTTL(key, value, int64(len(value)), ttl)
	p.c.Wait()
	return nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Provider) Flush(context.Context) error {
	p.c.Clear()
	return nil
}

func (p *Provider) Close(context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when Config.Metrics is set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
