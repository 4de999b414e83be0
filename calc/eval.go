package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrSyntax is wrapped by every malformed-expression error.
var ErrSyntax = errors.New("syntax error")

// ErrorKind classifies evaluation failures
type ErrorKind string

const (
	KindSyntax ErrorKind = "SYNTAX"
)

// EvalError describes why an expression could not be evaluated
type EvalError struct {
	Kind  ErrorKind
	Input string
	Pos   int // byte offset into Input, -1 when at end
	Msg   string
}

func (e *EvalError) Error() string {
	kind := strings.ToLower(string(e.Kind))
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %s at end of %q", kind, e.Msg, e.Input)
	}
	return fmt.Sprintf("%s: %s at offset %d of %q", kind, e.Msg, e.Pos, e.Input)
}

func (e *EvalError) Unwrap() error {
	return ErrSyntax
}

// Evaluate computes an ASCII arithmetic expression: decimal numbers, + - * /,
// unary sign and parentheses, with the usual precedence. Division follows
// IEEE-754, so 5/0 is +Inf and 0/0 is NaN.
func Evaluate(input string) (float64, error) {
	p := &parser{lex: lexer{input: input}}
	p.next()
	if p.tok.kind == tokEOF {
		return 0, p.fail("empty expression")
	}
	v, err := p.expression()
	if err != nil {
		return 0, err
	}
	if p.tok.kind != tokEOF {
		return 0, p.fail(fmt.Sprintf("unexpected %q", p.tok.text))
	}
	return v, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokOp // + - * / ( )
	tokInvalid
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type lexer struct {
	input string
	pos   int
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *lexer) scan() token {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: -1}
	}

	start := l.pos
	c := l.input[l.pos]
	switch {
	case c == '+' || c == '-' || c == '*' || c == '/' || c == '(' || c == ')':
		l.pos++
		return token{kind: tokOp, text: string(c), pos: start}
	case isDigit(c) || c == '.':
		digits, dot := 0, false
		for l.pos < len(l.input) {
			c = l.input[l.pos]
			if isDigit(c) {
				digits++
			} else if c == '.' && !dot {
				dot = true
			} else {
				break
			}
			l.pos++
		}
		if digits == 0 {
			return token{kind: tokInvalid, text: l.input[start:l.pos], pos: start}
		}
		return token{kind: tokNumber, text: l.input[start:l.pos], pos: start}
	}

	// consume one whole rune so the error names the character
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return token{kind: tokInvalid, text: l.input[start:l.pos], pos: start}
}

// maxDepth bounds nested parentheses and unary signs
const maxDepth = 1000

type parser struct {
	lex   lexer
	tok   token
	depth int
}

// enter counts one level of nesting; leave must follow a nil return
func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.fail("expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) next() {
	p.tok = p.lex.scan()
}

func (p *parser) is(op string) bool {
	return p.tok.kind == tokOp && p.tok.text == op
}

func (p *parser) fail(msg string) error {
	return &EvalError{Kind: KindSyntax, Input: p.lex.input, Pos: p.tok.pos, Msg: msg}
}

// expression := term (('+'|'-') term)*
func (p *parser) expression() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for p.is("+") || p.is("-") {
		op := p.tok.text
		p.next()
		r, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			v += r
		} else {
			v -= r
		}
	}
	return v, nil
}

// term := unary (('*'|'/') unary)*
func (p *parser) term() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for p.is("*") || p.is("/") {
		op := p.tok.text
		p.next()
		r, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			v *= r
		} else {
			v /= r
		}
	}
	return v, nil
}

// unary := ('+'|'-') unary | primary
func (p *parser) unary() (float64, error) {
	if !p.is("+") && !p.is("-") {
		return p.primary()
	}
	neg := p.is("-")
	if err := p.enter(); err != nil {
		return 0, err
	}
	defer p.leave()
	p.next()
	v, err := p.unary()
	if neg {
		v = -v
	}
	return v, err
}

// primary := number | '(' expression ')'
func (p *parser) primary() (float64, error) {
	switch {
	case p.tok.kind == tokNumber:
		v, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, p.fail(fmt.Sprintf("bad number %q", p.tok.text))
		}
		p.next()
		return v, nil
	case p.is("("):
		if err := p.enter(); err != nil {
			return 0, err
		}
		defer p.leave()
		p.next()
		v, err := p.expression()
		if err != nil {
			return 0, err
		}
		if !p.is(")") {
			return 0, p.fail("missing )")
		}
		p.next()
		return v, nil
	case p.tok.kind == tokEOF:
		return 0, p.fail("operand expected")
	}
	return 0, p.fail(fmt.Sprintf("unexpected %q", p.tok.text))
}
