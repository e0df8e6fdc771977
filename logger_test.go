package logconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONConsoleRegistry(t *testing.T) (*Registry, *syncBuffer) {
	t.Helper()
	reg, stdout, _ := newTestRegistry(t)
	_, err := reg.LoadConfig(ConfigSpec{Name: "logging_console", Formatter: FormatterJSON, LogLevel: "TRACE"})
	require.NoError(t, err)
	return reg, stdout
}

func TestLogger_Levels(t *testing.T) {
	reg, stdout := newJSONConsoleRegistry(t)
	log := reg.GetLogger("svc")
	assert.Equal(t, "svc", log.Name())

	log.TraceWith().Msg("t")
	log.DebugWith().Msg("d")
	log.InfoWith().Msg("i")
	log.WarnWith().Msg("w")
	log.ErrorWith().Msg("e")
	// Critical must not exit the test binary.
	log.CriticalWith().Msg("c")

	lines := jsonLines(t, stdout.String())
	require.Len(t, lines, 5, "trace is below the logger level")
	var levels []any
	for _, l := range lines {
		levels = append(levels, l["level"])
		assert.Equal(t, "svc", l[LoggerFieldName])
	}
	assert.Equal(t, []any{"debug", "info", "warn", "error", "fatal"}, levels)
}

func TestLogger_With(t *testing.T) {
	reg, stdout := newJSONConsoleRegistry(t)

	req := reg.GetLogger("svc").With().
		Str("request_id", "r-1").
		Int("attempt", 2).
		Bool("retry", true).
		Err(errors.New("upstream")).
		Logger()
	assert.Equal(t, "svc", req.Name())

	req.InfoWith().Strs("tags", []string{"a", "b"}).Msg("scoped")

	lines := jsonLines(t, stdout.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "r-1", lines[0]["request_id"])
	assert.EqualValues(t, 2, lines[0]["attempt"])
	assert.Equal(t, true, lines[0]["retry"])
	assert.Equal(t, "upstream", lines[0]["error"])
	assert.Equal(t, "svc", lines[0][LoggerFieldName])
}

func TestLogger_ContextLoggerFollowsRemoval(t *testing.T) {
	reg, stdout, _ := newTestRegistry(t)
	entry, err := reg.LoadConfig(ConfigSpec{Name: "logging_console"})
	require.NoError(t, err)

	child := reg.GetLogger("svc").With().Str("k", "v").Logger()
	child.InfoWith().Msg("child-before")
	assert.Contains(t, stdout.String(), "child-before")

	require.NoError(t, reg.RemoveConfig(entry.ID))
	child.InfoWith().Msg("child-after")
	assert.NotContains(t, stdout.String(), "child-after")
}

func TestLogger_Noop(t *testing.T) {
	var reg *Registry
	log := reg.GetLogger("x")
	assert.Equal(t, "x", log.Name())
	assert.NotPanics(t, func() {
		log.InfoWith().Str("a", "b").Msg("ignored")
		log.With().Str("a", "b").Logger().ErrorWith().Msg("ignored")
	})
	assert.False(t, log.ErrorWith().Enabled())
}

func TestLogger_DisabledLevelReturnsNoopEvent(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	_, err := reg.LoadConfig(ConfigSpec{Name: "logging_console", LogLevel: "ERROR"})
	require.NoError(t, err)

	log := reg.GetLogger("svc")
	// The logger level is DEBUG; handler thresholds apply when writing.
	assert.True(t, log.DebugWith().Enabled())
	assert.False(t, log.TraceWith().Enabled())
}
