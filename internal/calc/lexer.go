package calc

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokFloat
	tokName
	tokOp
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
	ival *big.Int
	fval float64
}

// lexer splits a normalized expression into tokens. Line breaks are only
// allowed inside brackets, before the first token or after the last one.
type lexer struct {
	input   []rune
	pos     int
	depth   int
	newline bool
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) peekRune(offset int) rune {
	i := l.pos + offset
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

// skipWhitespace advances past spaces and records whether a line break was
// crossed outside any bracket.
func (l *lexer) skipWhitespace() {
	l.newline = false
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		if r := l.input[l.pos]; (r == '\n' || r == '\r') && l.depth == 0 {
			l.newline = true
		}
		l.pos++
	}
}

// tokenize returns every token in the input followed by a single tokEOF.
func (l *lexer) tokenize() ([]token, error) {
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if l.newline && len(tokens) > 0 && tok.kind != tokEOF {
			return nil, syntaxErrorf("invalid syntax at position %d: unexpected line break", tok.pos)
		}
		switch tok.kind {
		case tokLParen, tokLBracket:
			l.depth++
		case tokRParen, tokRBracket:
			if l.depth > 0 {
				l.depth--
			}
		}
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: start}, nil
	}
	r := l.input[l.pos]

	switch {
	case isDigit(r) || (r == '.' && isDigit(l.peekRune(1))):
		return l.readNumber()
	case isNameStart(r):
		for l.pos < len(l.input) && isNameChar(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokName, text: string(l.input[start:l.pos]), pos: start}, nil
	}

	single := func(kind tokenKind) (token, error) {
		l.pos++
		return token{kind: kind, text: string(r), pos: start}, nil
	}
	op := func(text string) (token, error) {
		l.pos += len([]rune(text))
		return token{kind: tokOp, text: text, pos: start}, nil
	}

	switch r {
	case '(':
		return single(tokLParen)
	case ')':
		return single(tokRParen)
	case '[':
		return single(tokLBracket)
	case ']':
		return single(tokRBracket)
	case ',':
		return single(tokComma)
	case '+', '-', '%':
		return op(string(r))
	case '*':
		if l.peekRune(1) == '*' {
			return op("**")
		}
		return op("*")
	case '/':
		if l.peekRune(1) == '/' {
			return op("//")
		}
		return op("/")
	case '<', '>':
		if l.peekRune(1) == '=' {
			return op(string(r) + "=")
		}
		return op(string(r))
	case '=', '!':
		if l.peekRune(1) == '=' {
			return op(string(r) + "=")
		}
	}
	return token{}, syntaxErrorf("invalid syntax at position %d: unexpected %q", start, r)
}

// readNumber scans an integer or float literal. Underscores are accepted between
// digits; radix prefixes (0x, 0o, 0b) are accepted for integers.
func (l *lexer) readNumber() (token, error) {
	start := l.pos
	if l.input[l.pos] == '0' && l.pos+1 < len(l.input) {
		base := 0
		switch unicode.ToLower(l.input[l.pos+1]) {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 0 {
			l.pos += 2
			return l.readRadixInt(start, base)
		}
	}

	isFloat := false
	l.readDigits()
	if l.peekRune(0) == '.' {
		isFloat = true
		l.pos++
		l.readDigits()
	}
	if r := l.peekRune(0); r == 'e' || r == 'E' {
		save := l.pos
		l.pos++
		if s := l.peekRune(0); s == '+' || s == '-' {
			l.pos++
		}
		if isDigit(l.peekRune(0)) {
			isFloat = true
			l.readDigits()
		} else {
			l.pos = save
		}
	}
	if isNameChar(l.peekRune(0)) {
		return token{}, syntaxErrorf("invalid decimal literal at position %d", start)
	}

	text := string(l.input[start:l.pos])
	clean := strings.ReplaceAll(text, "_", "")
	if strings.Contains(text, "_") && !validUnderscores(text) {
		return token{}, syntaxErrorf("invalid decimal literal at position %d", start)
	}
	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil && !isRangeErr(err) {
			return token{}, syntaxErrorf("invalid float literal %q", text)
		}
		return token{kind: tokFloat, text: text, pos: start, fval: f}, nil
	}
	if len(clean) > 1 && clean[0] == '0' && strings.Trim(clean, "0") != "" {
		return token{}, syntaxErrorf("leading zeros in decimal integer literals are not permitted")
	}
	n, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return token{}, syntaxErrorf("invalid decimal literal %q", text)
	}
	return token{kind: tokInt, text: text, pos: start, ival: n}, nil
}

func (l *lexer) readRadixInt(start, base int) (token, error) {
	digitsStart := l.pos
	for l.pos < len(l.input) && (isHexDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
		l.pos++
	}
	if isNameChar(l.peekRune(0)) {
		return token{}, syntaxErrorf("invalid literal at position %d", start)
	}
	text := string(l.input[start:l.pos])
	digits := string(l.input[digitsStart:l.pos])
	if strings.HasSuffix(digits, "_") {
		return token{}, syntaxErrorf("invalid literal %q", text)
	}
	digits = strings.TrimPrefix(digits, "_")
	n, ok := new(big.Int).SetString(strings.ReplaceAll(digits, "_", ""), base)
	if !ok || digits == "" {
		return token{}, syntaxErrorf("invalid literal %q", text)
	}
	return token{kind: tokInt, text: text, pos: start, ival: n}, nil
}

func (l *lexer) readDigits() {
	for l.pos < len(l.input) {
		r := l.input[l.pos]
		if isDigit(r) || (r == '_' && isDigit(l.peekRune(1))) {
			l.pos++
			continue
		}
		return
	}
}

// validUnderscores reports whether every underscore sits between two digits.
func validUnderscores(text string) bool {
	runes := []rune(text)
	for i, r := range runes {
		if r != '_' {
			continue
		}
		if i == 0 || i == len(runes)-1 || !isDigit(runes[i-1]) || !isDigit(runes[i+1]) {
			return false
		}
	}
	return true
}

func isRangeErr(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
