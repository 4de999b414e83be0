package calc

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12+3", 15},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-4-3", 3},
		{"8/4/2", 1},
		{"-3+5", 2},
		{"2*-3", -6},
		{"--2", 2},
		{"+7", 7},
		{"1.5+.5", 2},
		{"5.", 5},
		{"09", 9},
		{" 1 + 1 ", 2},
		{"((((1))))", 1},
		{"2*(3+(4-1))/3", 4},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.in)
		require.NoError(t, err, "Evaluate(%q)", tt.in)
		assert.InDelta(t, tt.want, got, 1e-12, "Evaluate(%q)", tt.in)
	}
}

func TestEvaluateFloatSemantics(t *testing.T) {
	v, err := Evaluate("5/0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = Evaluate("-5/0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	v, err = Evaluate("0/0")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	v, err = Evaluate("0.1+0.2")
	require.NoError(t, err)
	assert.Equal(t, "0.30000000000000004", FormatNumber(v))
}

func TestEvaluateSyntaxErrors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"2+",
		"(1+2",
		"1+2)",
		"2(3)",
		"(2)3",
		"1.2.3",
		".",
		"2**3",
		"*2",
		"abc",
		"1+x",
		"()",
	}
	for _, in := range inputs {
		_, err := Evaluate(in)
		require.Error(t, err, "Evaluate(%q)", in)
		assert.True(t, errors.Is(err, ErrSyntax), "Evaluate(%q) should wrap ErrSyntax", in)

		var evalErr *EvalError
		require.True(t, errors.As(err, &evalErr))
		assert.Equal(t, KindSyntax, evalErr.Kind)
		assert.Equal(t, in, evalErr.Input)
	}
}

func TestEvaluateNestingLimit(t *testing.T) {
	v, err := Evaluate(strings.Repeat("(", 200) + "7" + strings.Repeat(")", 200))
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = Evaluate(strings.Repeat("-", 200) + "7")
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	n := 3_000_000
	deep := []string{
		strings.Repeat("(", n) + "1" + strings.Repeat(")", n),
		strings.Repeat("-", n) + "1",
		"2+" + strings.Repeat("(-", n) + "1" + strings.Repeat(")", n),
	}
	for _, in := range deep {
		_, err := Evaluate(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSyntax))

		var evalErr *EvalError
		require.True(t, errors.As(err, &evalErr))
		assert.Equal(t, KindSyntax, evalErr.Kind)
		assert.Contains(t, evalErr.Msg, "nested too deeply")
	}
}

func TestEvaluateErrorPosition(t *testing.T) {
	_, err := Evaluate("2+")
	var evalErr *EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, -1, evalErr.Pos)
	assert.Contains(t, err.Error(), "at end")

	_, err = Evaluate("1+x")
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, 2, evalErr.Pos)
	assert.Contains(t, err.Error(), `"x"`)
}

func TestEvaluatePure(t *testing.T) {
	for _, in := range []string{"12+3", "7/3", "2+", "5/0"} {
		a, errA := Evaluate(in)
		b, errB := Evaluate(in)
		assert.Equal(t, errA == nil, errB == nil, in)
		if errA == nil {
			assert.Equal(t, a, b, in)
		}
	}
}
