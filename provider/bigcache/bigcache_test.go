package bigcache

import (
	"context"
	"testing"
	"time"
)

func TestSetGetDelFlush(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{LifeWindow: time.Minute, HardMaxCacheSizeMB: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close(ctx)

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("miss expected: ok=%v err=%v", ok, err)
	}
	if err := p.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatal(err)
	}
	if v, ok, err := p.Get(ctx, "k"); err != nil || !ok || string(v) != "v" {
		t.Fatalf("Get: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del absent should be nil, got %v", err)
	}

	_ = p.Set(ctx, "x", []byte("1"), 0)
	if err := p.Flush(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := p.Get(ctx, "x"); ok {
		t.Fatalf("x should be flushed")
	}
}
