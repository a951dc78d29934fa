package promhooks

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := New("app", reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h.ServerUnreachable("a:11211", errors.New("refused"))
	h.Connected(2, 3)
	h.OpError("get", errors.New("timeout"))
	h.OpError("get", errors.New("timeout"))

	if v := testutil.ToFloat64(h.connects.WithLabelValues("connected")); v != 1 {
		t.Fatalf("connects{connected}=%v", v)
	}
	if v := testutil.ToFloat64(h.aliveServers); v != 2 {
		t.Fatalf("alive=%v", v)
	}
	if v := testutil.ToFloat64(h.opErrors.WithLabelValues("get")); v != 2 {
		t.Fatalf("op_errors{get}=%v", v)
	}
	if v := testutil.ToFloat64(h.unreachable.WithLabelValues("a:11211")); v != 1 {
		t.Fatalf("unreachable=%v", v)
	}
}

func TestDoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New("app", reg); err != nil {
		t.Fatal(err)
	}
	if _, err := New("app", reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
