package calc

import "strings"

// Display glyphs. The Expression is stored in this form so the input line and
// the stored value are always identical.
const (
	GlyphMul     = "×"
	GlyphDiv     = "÷"
	GlyphDecimal = ","
)

var (
	toGlyph = strings.NewReplacer("*", GlyphMul, ".", GlyphDecimal, "/", GlyphDiv)
	toASCII = strings.NewReplacer(GlyphMul, "*", GlyphDecimal, ".", GlyphDiv, "/")
)

// allowed reports whether r survives Filter
func allowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '+', '-', '*', '/', '×', '÷', '.', ',', '(', ')':
		return true
	}
	return false
}

// Filter strips every rune that is not a digit, operator, decimal mark or
// parenthesis.
func Filter(s string) string {
	if s == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, s)
}

// ToGlyph converts raw keyboard or pasted text into the stored glyph form.
func ToGlyph(raw string) string {
	if raw == "" {
		return raw
	}
	return toGlyph.Replace(Filter(raw))
}

// ToASCII converts a stored expression into the form fed to Evaluate.
func ToASCII(expr string) string {
	if expr == "" {
		return expr
	}
	return toASCII.Replace(Filter(expr))
}

// ToDisplay is the user-facing projection of an expression. Since the stored
// form already uses glyphs this only re-applies the filter and glyph mapping.
func ToDisplay(expr string) string {
	return ToGlyph(expr)
}
