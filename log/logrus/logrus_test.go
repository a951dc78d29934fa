package logrus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/unkn0wn-root/memfacade"
)

func TestLogrusLogger(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := LogrusLogger{E: logrus.NewEntry(base)}

	l.Error("unable to connect", memfacade.Fields{"total": 2, "err": errors.New("boom")})

	e := hook.LastEntry()
	if e == nil || e.Level != logrus.ErrorLevel || e.Message != "unable to connect" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Data["total"] != 2 {
		t.Fatalf("total = %v", e.Data["total"])
	}
	if err, _ := e.Data[logrus.ErrorKey].(error); err == nil || err.Error() != "boom" {
		t.Fatalf("error field = %v", e.Data[logrus.ErrorKey])
	}
}
