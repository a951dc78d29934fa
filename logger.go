package memfacade

// Fields carries structured context for a log line.
type Fields map[string]any

// Logger is the leveled logger memfacade writes to. Adapters for zap, logrus
// and slog live under log/. A nil Logger in Options disables logging.
//
// The facade logs at Error level when no server answers the connect probe and
// at Debug level for the connect lifecycle. Nothing is logged per operation.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
