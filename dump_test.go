package logconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Dump(t *testing.T) {
	reg, stdout, _ := newTestRegistry(t)
	entry, err := reg.LoadConfig(ConfigSpec{Name: "logging_console"})
	require.NoError(t, err)

	reg.Dump(reg.GetLogger("dump"))

	out := stdout.String()
	assert.Contains(t, out, "Dump: registry")
	assert.Contains(t, out, "Dump: entry")
	assert.Contains(t, out, entry.ID)
	assert.Contains(t, out, "Dump: handler")
	assert.Contains(t, out, entry.ID+"/console")
	assert.Contains(t, out, "Dump: logger")
}

func TestRegistry_DumpDisabled(t *testing.T) {
	reg, stdout, _ := newTestRegistry(t)
	_, err := reg.LoadConfig(ConfigSpec{Name: "logging_console", LogLevel: "ERROR"})
	require.NoError(t, err)

	reg.Dump(reg.GetLogger("dump"))
	reg.Dump(nil)
	assert.Empty(t, stdout.String())
}
