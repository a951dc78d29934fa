// Package promhooks exports memfacade.Hooks events as Prometheus metrics.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/memfacade"
)

// Hooks holds the collectors. Register them with Register or pass a
// Registerer to New.
type Hooks struct {
	connects     *prometheus.CounterVec // result: connected|degraded
	unreachable  *prometheus.CounterVec // addr
	aliveServers prometheus.Gauge
	opErrors     *prometheus.CounterVec // op
}

var _ memfacade.Hooks = (*Hooks)(nil)

// New creates the collectors under namespace and registers them with reg.
// A nil reg skips registration.
func New(namespace string, reg prometheus.Registerer) (*Hooks, error) {
	h := &Hooks{
		connects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "memfacade",
				Name:      "connects_total",
				Help:      "Lazy connect attempts by result",
			},
			[]string{"result"},
		),
		unreachable: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "memfacade",
				Name:      "unreachable_servers_total",
				Help:      "Servers that did not answer the connect probe",
			},
			[]string{"addr"},
		),
		aliveServers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "memfacade",
				Name:      "alive_servers",
				Help:      "Servers that answered the last connect probe",
			},
		),
		opErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "memfacade",
				Name:      "op_errors_total",
				Help:      "Forwarded operations that failed after connect",
			},
			[]string{"op"},
		),
	}
	if reg != nil {
		if err := h.Register(reg); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{h.connects, h.unreachable, h.aliveServers, h.opErrors} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hooks) ConnectStarted(int) {}

func (h *Hooks) ServerUnreachable(addr string, _ error) {
	h.unreachable.WithLabelValues(addr).Inc()
}

func (h *Hooks) Connected(alive, _ int) {
	h.connects.WithLabelValues("connected").Inc()
	h.aliveServers.Set(float64(alive))
}

func (h *Hooks) Degraded(int, error) {
	h.connects.WithLabelValues("degraded").Inc()
	h.aliveServers.Set(0)
}

func (h *Hooks) OpError(op string, _ error) {
	h.opErrors.WithLabelValues(op).Inc()
}
