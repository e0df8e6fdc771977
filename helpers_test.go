package logconfig

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the concurrent writes of console handlers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type logEntry map[string]any

// newTestRegistry returns a registry whose console handlers write to the
// returned buffers. It is closed when the test ends.
func newTestRegistry(t testing.TB, opts ...Option) (*Registry, *syncBuffer, *syncBuffer) {
	t.Helper()
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	cfg := DefaultConfig()
	cfg.LogDir = t.TempDir()
	base := []Option{WithConfig(cfg), WithStdout(stdout), WithStderr(stderr)}
	reg := New(append(base, opts...)...)
	t.Cleanup(func() { _ = reg.Close() })
	return reg, stdout, stderr
}

// jsonLines decodes every line of a JSON formatted output.
func jsonLines(t testing.TB, out string) []logEntry {
	t.Helper()
	var entries []logEntry
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e), "line: %s", line)
		entries = append(entries, e)
	}
	return entries
}

func readFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

// twoStreamDefinition writes JSON records to stdout from the root logger and
// to stderr from the loggers named in the test.
const twoStreamDefinition = `
version: 1
handlers:
  out:
    type: console
    stream: stdout
    formatter: json
  err:
    type: console
    stream: stderr
    formatter: json
loggers:
  root:
    handlers: [out]
  app.db:
    level: WARN
    handlers: [err]
  quiet:
    handlers: [err]
    propagate: false
  both:
    handlers: [out, err]
`

// rootLevelDefinition sends records at or above level from every logger to
// stdout as text.
func rootLevelDefinition(level string) string {
	return `
handlers:
  console:
    type: console
    stream: stdout
    formatter: text
loggers:
  root:
    level: ` + level + `
    handlers: [console]
`
}
