// Package sloghooks writes memfacade.Hooks events to a *slog.Logger.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/memfacade"
)

type Options struct {
	// Sampling for OpError to avoid floods during an outage; 0/1 = log all.
	OpErrorEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	opErrCtr atomic.Uint64
}

var _ memfacade.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ConnectStarted(servers int) {
	if h.l == nil {
		return
	}
	h.l.Debug("memfacade.connect_started", "servers", servers)
}

func (h *Hooks) ServerUnreachable(addr string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("memfacade.server_unreachable", "addr", addr, "err", err)
}

func (h *Hooks) Connected(alive, total int) {
	if h.l == nil {
		return
	}
	h.l.Info("memfacade.connected", "alive", alive, "total", total)
}

func (h *Hooks) Degraded(total int, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("memfacade.degraded", "total", total, "err", err)
}

func (h *Hooks) OpError(op string, err error) {
	if h.l == nil || !sample(h.opts.OpErrorEvery, &h.opErrCtr) {
		return
	}
	h.l.Warn("memfacade.op_error", "op", op, "err", err)
}
