package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryAppend(t *testing.T) {
	var h History
	h = h.Append("1+1", 0)
	h = h.Append("1+1", 0)
	assert.Equal(t, History{"1+1"}, h)

	h = h.Append("2×3", 0)
	h = h.Append("1+1", 0)
	assert.Equal(t, History{"1+1", "2×3", "1+1"}, h, "only the immediate predecessor is checked")

	assert.Equal(t, h, h.Append("", 0), "empty expressions are not recorded")
}

func TestHistoryAppendDoesNotAlias(t *testing.T) {
	base := make(History, 1, 4)
	base[0] = "1"
	a := base.Append("2", 0)
	b := base.Append("3", 0)
	assert.Equal(t, History{"1", "2"}, a)
	assert.Equal(t, History{"1", "3"}, b)
}

func TestHistoryLimit(t *testing.T) {
	var h History
	for _, e := range []string{"1", "2", "3", "4"} {
		h = h.Append(e, 3)
	}
	assert.Equal(t, History{"2", "3", "4"}, h)
}

func TestHistoryNoConsecutiveDuplicates(t *testing.T) {
	var h History
	for _, e := range []string{"1", "1", "2", "2", "2", "1", "3", "3"} {
		h = h.Append(e, 0)
	}
	for i := 0; i+1 < len(h); i++ {
		assert.NotEqual(t, h[i], h[i+1], "entries %d and %d", i, i+1)
	}
}

func TestHistorySelect(t *testing.T) {
	h := History{"1+1", "2+2"}
	got, ok := h.Select(1)
	assert.True(t, ok)
	assert.Equal(t, "2+2", got)
	assert.Equal(t, History{"1+1", "2+2"}, h, "select does not reorder")

	_, ok = h.Select(2)
	assert.False(t, ok)
	_, ok = h.Select(-1)
	assert.False(t, ok)
}

func TestHistoryClear(t *testing.T) {
	h := History{"1"}
	assert.Empty(t, h.Clear())
	_, ok := History{}.Last()
	assert.False(t, ok)
}
