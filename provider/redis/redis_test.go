package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStatsWithoutServers(t *testing.T) {
	p := New(Config{})
	defer p.Close(context.Background())
	if _, err := p.Stats(context.Background()); !errors.Is(err, ErrNoServers) {
		t.Fatalf("err=%v want ErrNoServers", err)
	}
}

func TestAddServerDeduplicates(t *testing.T) {
	p := New(Config{})
	defer p.Close(context.Background())
	_ = p.AddServer("127.0.0.1", 1)
	_ = p.AddServer("127.0.0.1", 1)
	if len(p.addrs) != 1 {
		t.Fatalf("addrs=%v", p.addrs)
	}
}

func TestStatsUnreachable(t *testing.T) {
	p := New(Config{DialTimeout: 200 * time.Millisecond})
	defer p.Close(context.Background())
	if err := p.AddServer("127.0.0.1", 1); err != nil {
		t.Fatal(err)
	}
	st, err := p.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(st) != 1 || st[0].Alive || st[0].Err == nil {
		t.Fatalf("expected one unreachable server, got %+v", st)
	}
}
