// Package logrus adapts a *logrus.Entry to memfacade.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/memfacade"
)

var _ memfacade.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f memfacade.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f memfacade.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f memfacade.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f memfacade.Fields) { l.with(f).Error(msg) }

// err values go through WithError so formatters render them as "error".
func (l LogrusLogger) with(f memfacade.Fields) *logrus.Entry {
	e := l.E
	for k, v := range f {
		if err, ok := v.(error); ok && k == "err" {
			e = e.WithError(err)
			continue
		}
		e = e.WithField(k, v)
	}
	return e
}
