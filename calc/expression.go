package calc

import (
	"math"
	"strconv"
)

// Append concatenates a keypad token to expr. Operator adjacency is not
// checked here; malformed input is reported by Evaluate.
func Append(expr, token string) string {
	return expr + ToGlyph(token)
}

// DeleteLast removes the final rune of expr.
func DeleteLast(expr string) string {
	if expr == "" {
		return expr
	}
	r := []rune(expr)
	return string(r[:len(r)-1])
}

// SetLiteral replaces the expression with free text, filtered to the stored
// glyph form.
func SetLiteral(text string) string {
	return ToGlyph(text)
}

// ReplaceWithResult formats a finite result as the next expression. It
// returns false for Inf and NaN, which have no expression form.
func ReplaceWithResult(v float64) (string, bool) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "", false
	}
	return ToGlyph(FormatNumber(v)), true
}

// FormatNumber renders v the way the result line shows it: shortest decimal
// that round-trips, never in exponent notation.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// drop the sign of -0
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
