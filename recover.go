package logconfig

import (
	"fmt"
	"runtime/debug"
)

// RecoverAndLog is meant to be deferred at the top of main or of a
// goroutine. It logs a recovered panic with its stack at critical level on
// the uncaught_exceptions logger, closes the registry so buffered handlers
// flush, and panics again with the original value.
//
//	reg := logconfig.New()
//	defer reg.RecoverAndLog()
func (r *Registry) RecoverAndLog() {
	rec := recover()
	if rec == nil {
		return
	}

	l := r.GetLogger(UncaughtLoggerName)
	ev := l.CriticalWith().Str("panic", fmt.Sprint(rec)).Str("stack", string(debug.Stack()))
	if err, ok := rec.(error); ok {
		ev = ev.Err(err)
	}
	ev.Msg("uncaught panic")

	_ = r.Close()
	panic(rec)
}
