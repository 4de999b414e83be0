package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var keypadTokens = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"+", "-", "×", "÷", ",", "*", "/", ".", "(", ")",
}

func TestAppend(t *testing.T) {
	assert.Equal(t, "1", Append("", "1"))
	assert.Equal(t, "12×", Append("12", "*"))
	assert.Equal(t, "12×", Append("12", "×"))
	assert.Equal(t, "1,", Append("1", "."))
	assert.Equal(t, "1+-", Append("1+", "-"), "operator adjacency is accepted")
	assert.Equal(t, "1", Append("1", "q"), "non-keypad tokens are dropped")
}

func TestDeleteLastUndoesAppend(t *testing.T) {
	exprs := []string{"", "1", "12×3", "÷÷", "(1,5)"}
	for _, e := range exprs {
		for _, tok := range keypadTokens {
			assert.Equal(t, e, DeleteLast(Append(e, tok)), "expr %q token %q", e, tok)
		}
	}
}

func TestDeleteLast(t *testing.T) {
	assert.Equal(t, "", DeleteLast(""))
	assert.Equal(t, "", DeleteLast("7"))
	assert.Equal(t, "12", DeleteLast("12÷"), "glyphs are removed whole")
}

func TestSetLiteral(t *testing.T) {
	assert.Equal(t, "3×4", SetLiteral("3*4"))
	assert.Equal(t, "3×4", SetLiteral("three 3 * 4"))
	assert.Equal(t, "", SetLiteral(""))
}

func TestReplaceWithResult(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{15, "15"},
		{-2, "-2"},
		{1.5, "1,5"},
		{0.1 + 0.2, "0,30000000000000004"},
		{1e21, "1000000000000000000000"},
		{math.Copysign(0, -1), "0"},
	}
	for _, tt := range tests {
		got, ok := ReplaceWithResult(tt.v)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		got, ok := ReplaceWithResult(v)
		assert.False(t, ok)
		assert.Empty(t, got)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "Infinity", FormatNumber(math.Inf(1)))
	assert.Equal(t, "-Infinity", FormatNumber(math.Inf(-1)))
	assert.Equal(t, "NaN", FormatNumber(math.NaN()))
	assert.Equal(t, "0.5", FormatNumber(0.5))
	assert.Equal(t, "42", FormatNumber(42))
}
