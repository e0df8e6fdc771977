package logconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"testing"

	smerrors "github.com/Station-Manager/errors"
)

func newFileLogger(b *testing.B, level string) Logger {
	b.Helper()
	reg, _, _ := newTestRegistry(b, WithSource(MapSource{"bench.yaml": fileDefinition}))
	_, err := reg.LoadConfig(ConfigSpec{
		Name:        "bench",
		LogLevel:    level,
		LogFilePath: filepath.Join(b.TempDir(), "bench.log"),
	})
	if err != nil {
		b.Fatal(err)
	}
	return reg.GetLogger("bench")
}

func BenchmarkStructuredLogging(b *testing.B) {
	l := newFileLogger(b, "INFO")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			l.InfoWith().
				Str("user_id", "user-123").
				Int("count", i).
				Str("operation", "test").
				Msg("Benchmark log")
			i++
		}
	})
}

func BenchmarkStructuredLoggingWithError(b *testing.B) {
	l := newFileLogger(b, "INFO")
	err := fmt.Errorf("test error")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			l.ErrorWith().
				Err(err).
				Str("operation", "benchmark").
				Int("retry", i).
				Msg("Error occurred")
			i++
		}
	})
}

func BenchmarkDisabledLevel(b *testing.B) {
	l := newFileLogger(b, "ERROR")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.DebugWith().Str("skipped", "yes").Msg("never written")
		}
	})
}

func BenchmarkContextLoggerCreation(b *testing.B) {
	l := newFileLogger(b, "INFO")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reqLogger := l.With().
			Str("request_id", fmt.Sprintf("req-%d", i)).
			Str("user_id", "user-123").
			Logger()
		reqLogger.InfoWith().Str("action", "start").Msg("Request started")
	}
}

func makeDetailedChain(depth int) error {
	if depth <= 0 {
		return nil
	}
	err := smerrors.New(smerrors.Op("op_0")).Msg("root cause message")
	for i := 1; i < depth; i++ {
		err = smerrors.New(smerrors.Op("op_" + strconv.Itoa(i))).Err(err).Msg("wrapped message")
	}
	return err
}

func BenchmarkBuildErrorChain(b *testing.B) {
	err := makeDetailedChain(10)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _, _ = buildErrorChain(err)
	}
}

func BenchmarkErrorWith_DetailedChain(b *testing.B) {
	l := newFileLogger(b, "INFO")
	err := makeDetailedChain(6)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.ErrorWith().Err(err).Msg("oops")
	}
}
