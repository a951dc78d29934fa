package asynchook

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/unkn0wn-root/memfacade"
)

type countingHooks struct {
	memfacade.NopHooks
	ops      atomic.Int64
	degraded atomic.Int64
}

func (c *countingHooks) OpError(string, error) { c.ops.Add(1) }
func (c *countingHooks) Degraded(int, error)   { c.degraded.Add(1) }

func TestCloseDrainsQueue(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 100)
	for i := 0; i < 50; i++ {
		h.OpError("get", errors.New("x"))
	}
	h.Degraded(1, errors.New("x"))
	h.Close()

	if got := inner.ops.Load(); got != 50 {
		t.Fatalf("ops=%d want 50", got)
	}
	if got := inner.degraded.Load(); got != 1 {
		t.Fatalf("degraded=%d want 1", got)
	}
}

func TestSendAfterCloseIsDropped(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 1, 1)
	h.Close()
	h.Close()
	h.OpError("set", errors.New("x")) // must not panic
	if inner.ops.Load() != 0 {
		t.Fatalf("event delivered after Close")
	}
}
