package logconfig

// Logger is a named logger handed out by a Registry. Records are offered to
// the handlers bound to the logger's name and its ancestors at the moment
// they are written.
//
// Example: reg.GetLogger("app.db").InfoWith().Str("table", t).Msg("migrated")
type Logger interface {
	Name() string

	TraceWith() LogEvent
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent
	// CriticalWith logs at the highest severity. Unlike zerolog's Fatal it
	// never exits the process.
	CriticalWith() LogEvent

	// With creates a child logger with pre-populated fields that will be
	// included in all subsequent logs. The child keeps the parent's name.
	// Example: reqLogger := logger.With().Str("request_id", id).Logger()
	With() LogContext
}
