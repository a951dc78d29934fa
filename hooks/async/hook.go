// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{OpErrorEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := memfacade.New(memfacade.Options{
//	    Servers: []string{"cache-1", "cache-2"},
//	    Hooks:   hooks,
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/memfacade"
)

// Hooks forwards events to inner on worker goroutines. Events are dropped
// when the queue is full.
type Hooks struct {
	inner memfacade.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ memfacade.Hooks = (*Hooks)(nil)

func New(inner memfacade.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	defer func() { _ = recover() }() // send on closed queue after Close
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ConnectStarted(n int)         { h.try(func() { h.inner.ConnectStarted(n) }) }
func (h *Hooks) Connected(alive, total int)   { h.try(func() { h.inner.Connected(alive, total) }) }
func (h *Hooks) Degraded(n int, err error)    { h.try(func() { h.inner.Degraded(n, err) }) }
func (h *Hooks) OpError(op string, err error) { h.try(func() { h.inner.OpError(op, err) }) }
func (h *Hooks) ServerUnreachable(addr string, err error) {
	h.try(func() { h.inner.ServerUnreachable(addr, err) })
}
