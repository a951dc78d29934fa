// Package redis lets memfacade front a pool of redis servers instead of
// memcached. Registered servers become shards of a go-redis Ring.
package redis

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/memfacade/provider"
)

var ErrNoServers = errors.New("redis provider: no servers registered")

type Config struct {
	Password     string
	DB           int
	DialTimeout  time.Duration // 0 => go-redis default
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

type Redis struct {
	mu     sync.Mutex
	addrs  []string
	shards map[string]string // shard name => addr; name is the addr
	ring   *goredis.Ring
}

var _ pr.Provider = (*Redis)(nil)

func New(cfg Config) *Redis {
	ring := goredis.NewRing(&goredis.RingOptions{
		Addrs:        map[string]string{},
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})
	return &Redis{ring: ring, shards: map[string]string{}}
}

func (p *Redis) AddServer(host string, port int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	if _, dup := p.shards[addr]; dup {
		return nil
	}
	p.addrs = append(p.addrs, addr)
	p.shards[addr] = addr
	next := make(map[string]string, len(p.shards))
	for k, v := range p.shards {
		next[k] = v
	}
	p.ring.SetAddrs(next)
	return nil
}

// Stats pings every shard. Shards the ring did not visit stay unreachable.
func (p *Redis) Stats(ctx context.Context) ([]pr.ServerStatus, error) {
	p.mu.Lock()
	addrs := append([]string(nil), p.addrs...)
	p.mu.Unlock()
	if len(addrs) == 0 {
		return nil, ErrNoServers
	}

	var mu sync.Mutex
	seen := make(map[string]error, len(addrs))
	_ = p.ring.ForEachShard(ctx, func(ctx context.Context, c *goredis.Client) error {
		err := c.Ping(ctx).Err()
		mu.Lock()
		seen[c.Options().Addr] = err
		mu.Unlock()
		return nil
	})

	out := make([]pr.ServerStatus, len(addrs))
	for i, addr := range addrs {
		err, ok := seen[addr]
		switch {
		case !ok:
			out[i] = pr.ServerStatus{Addr: addr, Err: errors.New("shard not probed")}
		case err != nil:
			out[i] = pr.ServerStatus{Addr: addr, Err: err}
		default:
			out[i] = pr.ServerStatus{Addr: addr, Alive: true}
		}
	}
	return out, nil
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.ring.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0 // no expiry
	}
	return p.ring.Set(ctx, key, value, ttl).Err()
}

func (p *Redis) Del(ctx context.Context, key string) error {
	return p.ring.Del(ctx, key).Err()
}

// Flush runs FLUSHDB on every shard.
func (p *Redis) Flush(ctx context.Context) error {
	return p.ring.ForEachShard(ctx, func(ctx context.Context, c *goredis.Client) error {
		return c.FlushDB(ctx).Err()
	})
}

// Close releases the ring. Safe to call multiple times.
func (p *Redis) Close(context.Context) error {
	if err := p.ring.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
