package loader

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokReal
	tokString
	tokOp
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokQuestion
)

var tokenNames = map[tokenKind]string{
	tokEOF: "end of expression", tokIdent: "identifier", tokInt: "integer", tokReal: "real",
	tokString: "string", tokOp: "operator", tokLParen: "'('", tokRParen: "')'",
	tokLBracket: "'['", tokRBracket: "']'", tokLBrace: "'{'", tokRBrace: "'}'",
	tokComma: "','", tokColon: "':'", tokQuestion: "'?'",
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	text string
	pos  int
}

// operators are matched longest first.
var operators = []string{
	"%/%", "||", "&&", "==", "!=", "<=", ">=", ".*", "./",
	"<", ">", "+", "-", "*", "/", "%", "^", "!",
}

var punctuation = map[byte]tokenKind{
	'(': tokLParen, ')': tokRParen, '[': tokLBracket, ']': tokRBracket,
	'{': tokLBrace, '}': tokRBrace, ',': tokComma, ':': tokColon, '?': tokQuestion,
}

// Lexer splits a single model expression into tokens.
type Lexer struct {
	input string
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) Errorf(pos int, format string, args ...any) error {
	return fmt.Errorf("col %d: %s", pos+1, fmt.Sprintf(format, args...))
}

// Next returns the next token, or a tokEOF token at the end of input.
func (l *Lexer) Next() (token, error) {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: start}, nil
	}
	c := l.input[l.pos]
	switch {
	case c == '_' || unicode.IsLetter(rune(c)):
		for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.input[start:l.pos], pos: start}, nil
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])):
		return l.scanNumber()
	case c == '"':
		return l.scanString()
	}
	if kind, ok := punctuation[c]; ok {
		l.pos++
		return token{kind: kind, text: string(c), pos: start}, nil
	}
	for _, op := range operators {
		if strings.HasPrefix(l.input[l.pos:], op) {
			l.pos += len(op)
			return token{kind: tokOp, text: op, pos: start}, nil
		}
	}
	return token{}, l.Errorf(start, "unexpected character %q", c)
}

func (l *Lexer) scanNumber() (token, error) {
	start := l.pos
	kind := tokInt
	l.skipDigits()
	// `2.*x` is elementwise multiplication, not the real 2.
	if l.peekIs('.') && !l.peekAtIs(1, '*') && !l.peekAtIs(1, '/') {
		kind = tokReal
		l.pos++
		l.skipDigits()
	}
	if l.peekIs('e') || l.peekIs('E') {
		kind = tokReal
		l.pos++
		if l.peekIs('+') || l.peekIs('-') {
			l.pos++
		}
		if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
			return token{}, l.Errorf(l.pos, "malformed exponent in %q", l.input[start:l.pos])
		}
		l.skipDigits()
	}
	return token{kind: kind, text: l.input[start:l.pos], pos: start}, nil
}

func (l *Lexer) scanString() (token, error) {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case '"':
			l.pos++
			value, err := strconv.Unquote(l.input[start:l.pos])
			if err != nil {
				return token{}, l.Errorf(start, "invalid string literal: %v", err)
			}
			return token{kind: tokString, text: value, pos: start}, nil
		}
		l.pos++
	}
	return token{}, l.Errorf(start, "unterminated string literal")
}

func (l *Lexer) skipDigits() {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) peekIs(c byte) bool { return l.peekAtIs(0, c) }

func (l *Lexer) peekAtIs(offset int, c byte) bool {
	return l.pos+offset < len(l.input) && l.input[l.pos+offset] == c
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) || unicode.IsLetter(rune(c))
}
