package logconfig

import (
	"github.com/rs/zerolog"
)

// namedLogger writes through a dispatcher, so it never holds handlers itself.
type namedLogger struct {
	name   string
	logger zerolog.Logger
	reg    *Registry
}

func newNamedLogger(r *Registry, name string) *namedLogger {
	return &namedLogger{
		name:   name,
		logger: zerolog.New(&dispatcher{reg: r, name: name}).With().Timestamp().Str(LoggerFieldName, name).Logger(),
		reg:    r,
	}
}

func (l *namedLogger) Name() string {
	if l == nil {
		return emptyString
	}
	return l.name
}

// event starts a record at level, or returns a no-op event when no handler
// of this logger's chain could accept it.
func (l *namedLogger) event(level zerolog.Level) LogEvent {
	if l == nil || l.reg == nil || !l.reg.enabled(l.name, level) {
		return newLogEvent(nil)
	}
	// WithLevel never exits or panics, even at fatal level.
	return newLogEvent(l.logger.WithLevel(level))
}

func (l *namedLogger) TraceWith() LogEvent    { return l.event(zerolog.TraceLevel) }
func (l *namedLogger) DebugWith() LogEvent    { return l.event(zerolog.DebugLevel) }
func (l *namedLogger) InfoWith() LogEvent     { return l.event(zerolog.InfoLevel) }
func (l *namedLogger) WarnWith() LogEvent     { return l.event(zerolog.WarnLevel) }
func (l *namedLogger) ErrorWith() LogEvent    { return l.event(zerolog.ErrorLevel) }
func (l *namedLogger) CriticalWith() LogEvent { return l.event(zerolog.FatalLevel) }

func (l *namedLogger) With() LogContext {
	if l == nil || l.reg == nil || l.reg.closed.Load() {
		return &noopLogContext{name: l.Name()}
	}
	return &logContext{
		context: l.logger.With(),
		name:    l.name,
		reg:     l.reg,
	}
}

// noopLogger is a no-op implementation of Logger
type noopLogger struct {
	name string
}

func (n *noopLogger) Name() string           { return n.name }
func (n *noopLogger) TraceWith() LogEvent    { return newLogEvent(nil) }
func (n *noopLogger) DebugWith() LogEvent    { return newLogEvent(nil) }
func (n *noopLogger) InfoWith() LogEvent     { return newLogEvent(nil) }
func (n *noopLogger) WarnWith() LogEvent     { return newLogEvent(nil) }
func (n *noopLogger) ErrorWith() LogEvent    { return newLogEvent(nil) }
func (n *noopLogger) CriticalWith() LogEvent { return newLogEvent(nil) }
func (n *noopLogger) With() LogContext       { return &noopLogContext{name: n.name} }
