package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestOpErrorSampling(t *testing.T) {
	var buf bytes.Buffer
	h := New(slog.New(slog.NewTextHandler(&buf, nil)), Options{OpErrorEvery: 3})

	for i := 0; i < 6; i++ {
		h.OpError("get", errors.New("timeout"))
	}
	if n := strings.Count(buf.String(), "memfacade.op_error"); n != 2 {
		t.Fatalf("logged %d op errors, want 2", n)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.ConnectStarted(1)
	h.ServerUnreachable("a:1", errors.New("x"))
	h.Connected(1, 1)
	h.Degraded(1, errors.New("x"))
	h.OpError("set", errors.New("x"))
}

func TestDegradedLogsAtError(t *testing.T) {
	var buf bytes.Buffer
	h := New(slog.New(slog.NewTextHandler(&buf, nil)), Options{})
	h.Degraded(2, errors.New("no servers"))
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "total=2") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
