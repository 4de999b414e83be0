package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	Log("calc", "dropped before enable")

	require.NoError(t, EnableFile(path))
	t.Cleanup(Disable)
	assert.True(t, Enabled())

	Log("calc", "evaluate %q", "2+")
	for i := 0; i < 4; i++ {
		LogEvery(2, "midi", "pad")
	}
	Disable()
	assert.False(t, Enabled())
	Log("calc", "dropped after disable")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Debug logging started")
	assert.Contains(t, out, `calc       evaluate "2+"`)
	assert.Equal(t, 2, strings.Count(out, "pad (every 2"))
	assert.NotContains(t, out, "dropped")
}
